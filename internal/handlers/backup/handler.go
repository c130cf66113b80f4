package backup

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/backup/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Backup
	otel    otel.Otel
}

func New(service service.Backup, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/backups", handler.CreateSnapshot)
}

// CreateSnapshot uploads a copy of the database.
// @Summary Take a database snapshot
// @Description Copies the live SQLite file into the configured S3 bucket.
// @Tags Backup
// @Produce json
// @Success 201 {object} response.Data[dto.SnapshotResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /api/backups [post]
// @Security BearerAuth
func (handler *Handler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSnapshot")
	defer scope.End()

	res, err := handler.service.TakeSnapshot(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}
