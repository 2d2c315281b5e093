package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtMaker "github.com/magabrotheeeer/estate-leads/internal/lib/jwt"
	"github.com/magabrotheeeer/estate-leads/internal/models"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	maker := jwtMaker.NewMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("alex", "standard", "uid-1")
	require.NoError(t, err)

	var gotUID, gotUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID = UserUIDFromRequest(r)
		gotUser, _ = r.Context().Value(User).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTMiddleware(maker, newTestLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-1", gotUID)
	assert.Equal(t, "alex", gotUser)
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	maker := jwtMaker.NewMaker("test-secret", time.Hour)

	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	JWTMiddleware(maker, newTestLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	maker := jwtMaker.NewMaker("test-secret", -time.Minute)
	token, err := maker.GenerateToken("alex", "standard", "uid-1")
	require.NoError(t, err)

	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTMiddleware(maker, newTestLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Запрос без заголовка проходит дальше как гостевой: UID в контексте пуст.
func TestOptionalJWTMiddleware_NoHeaderIsGuest(t *testing.T) {
	maker := jwtMaker.NewMaker("test-secret", time.Hour)

	var gotUID string
	called := false
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		called = true
		gotUID = UserUIDFromRequest(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	OptionalJWTMiddleware(maker, newTestLogger())(next).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Empty(t, gotUID)
}

// Предъявленный невалидный токен — ошибка клиента, а не гость.
func TestOptionalJWTMiddleware_InvalidTokenRejected(t *testing.T) {
	maker := jwtMaker.NewMaker("test-secret", time.Hour)
	otherToken, err := jwtMaker.NewMaker("other-secret", time.Hour).GenerateToken("alex", "standard", "uid-1")
	require.NoError(t, err)

	next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	rec := httptest.NewRecorder()

	OptionalJWTMiddleware(maker, newTestLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTMiddleware_ValidToken(t *testing.T) {
	maker := jwtMaker.NewMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("alex", "standard", "uid-1")
	require.NoError(t, err)

	var gotUID string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotUID = UserUIDFromRequest(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	OptionalJWTMiddleware(maker, newTestLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, "uid-1", gotUID)
}

type stubResolver struct {
	tier   models.Tier
	gotUID string
	called bool
}

func (s *stubResolver) Resolve(_ context.Context, userUID string) models.Tier {
	s.called = true
	s.gotUID = userUID
	return s.tier
}

func TestTierMiddleware(t *testing.T) {
	resolver := &stubResolver{tier: models.TierTrialing}

	var gotTier models.Tier
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotTier = TierFromRequest(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserUID, "uid-1"))
	rec := httptest.NewRecorder()

	TierMiddleware(resolver)(next).ServeHTTP(rec, req)

	assert.True(t, resolver.called)
	assert.Equal(t, "uid-1", resolver.gotUID)
	assert.Equal(t, models.TierTrialing, gotTier)
}

func TestTierFromRequest_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, models.TierGuest, TierFromRequest(req))
}
