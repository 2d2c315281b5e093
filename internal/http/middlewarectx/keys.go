// Package middlewarectx содержит HTTP middleware аутентификации,
// вычисления уровня доступа и ограничения частоты запросов, а также
// ключи контекста, через которые обработчики читают их результаты.
package middlewarectx

import (
	"net/http"

	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
	// UserUID — ключ для идентификатора пользователя в контексте
	UserUID Key = "user_uid"
	// TierKey — ключ для уровня доступа в контексте
	TierKey Key = "tier"
)

// UserUIDFromRequest возвращает UID пользователя из контекста запроса.
// Пустая строка означает неаутентифицированного вызывающего.
func UserUIDFromRequest(r *http.Request) string {
	uid, _ := r.Context().Value(UserUID).(string)
	return uid
}

// TierFromRequest возвращает уровень доступа из контекста запроса.
// Если уровень не вычислялся, возвращает guest.
func TierFromRequest(r *http.Request) models.Tier {
	if tier, ok := r.Context().Value(TierKey).(models.Tier); ok {
		return tier
	}
	return models.TierGuest
}
