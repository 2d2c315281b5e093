// Package interceptor содержит HTTP middleware, которое маскирует
// чувствительные поля в исходящих JSON-ответах для пользователей
// без оплаченного доступа. Перехватчик работает на границе сериализации
// и ничего не знает о конкретных эндпоинтах: записи распознаются по
// структуре тела ответа, поэтому новые эндпоинты каталога получают
// маскирование автоматически.
package interceptor

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/estate-leads/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estate-leads/internal/lib/sl"
	"github.com/magabrotheeeer/estate-leads/internal/masking"
	"github.com/magabrotheeeer/estate-leads/internal/metrics"
	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// bufferedWriter откладывает запись тела и статуса, пока не решено,
// нужно ли маскирование.
type bufferedWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (b *bufferedWriter) WriteHeader(status int) {
	b.status = status
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

// Middleware возвращает HTTP middleware маскирования ответов.
//
// Маскируются только успешные (2xx) JSON-ответы для вызывающих с уровнем
// ниже paid. Ответы об ошибках, не-JSON тела и ответы платных пользователей
// проходят без изменений байт в байт. Статус-код никогда не меняется:
// маскирование ограничивает содержимое, а не доступ.
func Middleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "interceptor.Middleware"

			tier := middlewarectx.TierFromRequest(r)
			if tier.Meets(models.TierPaid) {
				next.ServeHTTP(w, r)
				return
			}

			buf := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(buf, r)

			body := buf.body.Bytes()
			if masked, ok := maskBody(buf, body); ok {
				body = masked
			} else if !ok && shouldMask(buf, body) {
				// Нечитаемый JSON в успешном ответе: отдать оригинал
				// нельзя, там немаскированные данные.
				log.Error("failed to mask response body, replying 500",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			w.WriteHeader(buf.status)
			if _, err := w.Write(body); err != nil {
				log.Error("failed to write response", slog.String("op", op), sl.Err(err))
			}
		})
	}
}

// shouldMask сообщает, подлежит ли ответ маскированию: успешный статус
// и JSON-содержимое.
func shouldMask(buf *bufferedWriter, body []byte) bool {
	if buf.status < 200 || buf.status >= 300 {
		return false
	}
	if len(body) == 0 {
		return false
	}
	contentType := buf.Header().Get("Content-Type")
	return contentType == "" || strings.HasPrefix(contentType, "application/json")
}

// maskBody маскирует тело ответа. Возвращает (nil, false), если тело
// не подлежит маскированию или не разобралось как JSON.
func maskBody(buf *bufferedWriter, body []byte) ([]byte, bool) {
	if !shouldMask(buf, body) {
		return nil, false
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false
	}

	transformed, counts := masking.Transform(payload)
	for schema, count := range counts {
		metrics.MaskedResponses.WithLabelValues(string(schema)).Add(float64(count))
	}

	masked, err := json.Marshal(transformed)
	if err != nil {
		return nil, false
	}
	return masked, true
}
