package view

import (
	"net/http"
	"path/filepath"
	"strings"

	"hotel/config"
	authDto "hotel/internal/domains/auth/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const (
	pageLogin     = "login.html"
	pageDashboard = "dashboard.html"
	pageBookings  = "bookings.html"
	assetsDir     = "assets"

	messageNotFound = "Not found"
)

// Handler serves the HTML pages and their static assets from APP_PUBLIC_DIR.
type Handler struct {
	publicDir string
}

func New(cfg *config.Config) Handler {
	return Handler{publicDir: cfg.App.PublicDir}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.Index)
	router.Get(constant.PathLogin, handler.Login)
	router.Get(constant.PathDashboard, handler.page(pageDashboard))
	router.Get("/bookings", handler.page(pageBookings))
	router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(filepath.Join(handler.publicDir, assetsDir)))))
	router.NotFound(handler.Fallback)
}

// Index sends signed-in users to the dashboard and everyone else to login.
func (handler *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if _, ok := authDto.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, constant.PathDashboard, http.StatusFound)

		return
	}

	http.Redirect(w, r, constant.PathLogin, http.StatusFound)
}

func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := authDto.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, constant.PathDashboard, http.StatusFound)

		return
	}

	handler.page(pageLogin)(w, r)
}

// Fallback answers unknown API paths with 404 and sends any other unknown
// path back to the index.
func (handler *Handler) Fallback(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, constant.PathAPIPrefix) {
		response.WithError(w, failure.NotFound(messageNotFound))

		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (handler *Handler) page(name string) http.HandlerFunc {
	path := filepath.Join(handler.publicDir, name)

	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}
