// Package webhook реализует HTTP-обработчик событий платёжного провайдера.
//
// Подлинность события проверяется подписью HMAC-SHA256 тела запроса
// в заголовке X-Api-Signature до какого-либо разбора payload.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/estate-leads/internal/http/response"
	"github.com/magabrotheeeer/estate-leads/internal/lib/sl"
	billingsvc "github.com/magabrotheeeer/estate-leads/internal/services/billing"
)

// Service описывает интерфейс бизнес-логики обработки событий провайдера.
type Service interface {
	HandleEvent(ctx context.Context, ev billingsvc.WebhookEvent) error
}

// Handler обрабатывает webhook-запросы платёжного провайдера.
type Handler struct {
	log           *slog.Logger
	service       Service
	validate      *validator.Validate
	webhookSecret string
}

// New создает новый Handler с переданным логгером, сервисом и секретом подписи.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		validate:      validator.New(),
		webhookSecret: secret,
	}
}

// verifySignature проверяет подпись HMAC-SHA256 тела запроса.
func (h *Handler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expectedSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedSig), []byte(signature))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.webhook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Api-Signature")
	if signature == "" || !h.verifySignature(body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var ev billingsvc.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(ev); err != nil {
		log.Error("webhook payload validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.HandleEvent(r.Context(), ev); err != nil {
		if errors.Is(err, billingsvc.ErrUnknownEventType) {
			log.Warn("unknown webhook event type", slog.String("type", ev.Type))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		log.Error("failed to process webhook event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.Info("webhook processed successfully", slog.String("type", ev.Type))
	w.WriteHeader(http.StatusOK)
}
