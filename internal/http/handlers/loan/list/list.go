// Package list реализует HTTP-обработчик списка займов.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/estate-leads/internal/http/response"
	"github.com/magabrotheeeer/estate-leads/internal/lib/sl"
	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// Service описывает интерфейс бизнес-логики списка займов.
type Service interface {
	ListLoans(ctx context.Context, limit, offset int) ([]*models.Loan, error)
}

// Handler обрабатывает запросы на получение списка займов.
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
	const op = "handlers.loan.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.service.ListLoans(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list loans", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list loans"))
		return
	}

	log.Info("listed loans", slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"list_count": len(res),
		"entries":    res,
	}))
}
