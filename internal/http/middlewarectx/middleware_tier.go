package middlewarectx

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// TierResolver вычисляет уровень доступа пользователя на запрос.
type TierResolver interface {
	Resolve(ctx context.Context, userUID string) models.Tier
}

// TierMiddleware возвращает HTTP middleware, который вычисляет уровень
// доступа вызывающего и кладёт его в контекст запроса. Ставится после
// OptionalJWTMiddleware: пустой UID в контексте означает гостя.
//
// Middleware никогда не отклоняет запрос — при любой неопределённости
// резолвер возвращает заниженный уровень, и ответ будет замаскирован.
func TierMiddleware(resolver TierResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tier := resolver.Resolve(r.Context(), UserUIDFromRequest(r))
			ctx := context.WithValue(r.Context(), TierKey, tier)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
