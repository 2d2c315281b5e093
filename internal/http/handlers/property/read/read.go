// Package read реализует HTTP-обработчик получения объекта недвижимости по ID.
package read

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/estate-leads/internal/http/response"
	"github.com/magabrotheeeer/estate-leads/internal/lib/sl"
	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения объекта.
type Service interface {
	ReadProperty(ctx context.Context, id int) (*models.Property, error)
}

// Handler обрабатывает запросы на получение объекта недвижимости по ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.property.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	res, err := h.service.ReadProperty(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("property not found"))
			return
		}
		log.Error("failed to read property", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read property"))
		return
	}

	log.Info("read property", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"entry": res,
	}))
}
