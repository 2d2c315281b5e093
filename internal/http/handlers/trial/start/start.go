// Package start реализует HTTP-обработчик запуска пробного периода.
package start

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/estate-leads/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estate-leads/internal/http/response"
	"github.com/magabrotheeeer/estate-leads/internal/lib/sl"
	"github.com/magabrotheeeer/estate-leads/internal/models"
	trialsvc "github.com/magabrotheeeer/estate-leads/internal/services/trial"
)

// Request — входные данные для запуска пробного периода
type Request struct {
	Plan string `json:"plan" validate:"required,oneof=basic premium enterprise"`
}

// Service описывает интерфейс бизнес-логики запуска пробного периода.
type Service interface {
	Start(ctx context.Context, userUID, plan string) (*models.Trial, error)
}

// Handler обрабатывает запросы на запуск пробного периода.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trial.start"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := middlewarectx.UserUIDFromRequest(r)
	if userUID == "" {
		log.Error("user uid not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	trial, err := h.service.Start(r.Context(), userUID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, trialsvc.ErrAlreadyTrialing):
			log.Info("user already has an active trial", slog.String("user_uid", userUID))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("active trial already exists"))
		case errors.Is(err, trialsvc.ErrAlreadySubscribed):
			log.Info("user already has an active subscription", slog.String("user_uid", userUID))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("active subscription already exists"))
		case errors.Is(err, trialsvc.ErrUnknownPlan):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown trial plan"))
		default:
			log.Error("failed to start trial", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to start trial"))
		}
		return
	}

	log.Info("trial started", slog.String("user_uid", userUID), slog.Int("trial_id", trial.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"trial_id": trial.ID,
		"plan":     trial.TrialType,
		"end_date": trial.EndDate,
	}))
}
