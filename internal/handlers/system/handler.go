package system

import (
	"context"
	"net/http"
	"time"

	"hotel/infras/sqlite"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	healthTimeout = 2 * time.Second
	messageOK     = "OK"
)

// ProjectInfo describes the running system for the dashboard footer.
type ProjectInfo struct {
	Project      string              `json:"project"`
	Architecture map[string][]string `json:"architecture"`
}

var projectInfo = ProjectInfo{
	Project: "Hotel Booking & Reservation System",
	Architecture: map[string][]string{
		"backend":  {"Go", "chi/v5"},
		"auth":     {"JWT", "Route Guard Middleware"},
		"database": {"SQLite 3"},
		"frontend": {"Multi-page HTML/CSS/JS", "Shared layout components"},
	},
}

// Pinger is satisfied by *sqlite.Connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db Pinger
}

func New(db *sqlite.Connection) Handler {
	return Handler{db: db}
}

func NewWithPinger(db Pinger) Handler {
	return Handler{db: db}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
	router.Get("/project-info", handler.ProjectInfo)
}

// Health reports whether the database answers.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /api/health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := handler.db.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		response.WithUnhealthy(w)

		return
	}

	response.WithMessage(w, http.StatusOK, messageOK)
}

// ProjectInfo returns a static description of the system.
// @Summary Project information
// @Tags System
// @Produce json
// @Success 200 {object} ProjectInfo
// @Router /api/project-info [get]
func (handler *Handler) ProjectInfo(w http.ResponseWriter, _ *http.Request) {
	response.WithBody(w, http.StatusOK, projectInfo)
}
