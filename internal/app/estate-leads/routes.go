// Package estateleads предоставляет маршруты для основного приложения.
package estateleads

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	auctionlist "github.com/magabrotheeeer/estate-leads/internal/http/handlers/auction/list"
	"github.com/magabrotheeeer/estate-leads/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/estate-leads/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/estate-leads/internal/http/handlers/billing/webhook"
	"github.com/magabrotheeeer/estate-leads/internal/http/handlers/health"
	loanlist "github.com/magabrotheeeer/estate-leads/internal/http/handlers/loan/list"
	"github.com/magabrotheeeer/estate-leads/internal/http/handlers/maskingrules"
	ownerlist "github.com/magabrotheeeer/estate-leads/internal/http/handlers/owner/list"
	propertylist "github.com/magabrotheeeer/estate-leads/internal/http/handlers/property/list"
	propertyread "github.com/magabrotheeeer/estate-leads/internal/http/handlers/property/read"
	trialcancel "github.com/magabrotheeeer/estate-leads/internal/http/handlers/trial/cancel"
	trialstart "github.com/magabrotheeeer/estate-leads/internal/http/handlers/trial/start"
	"github.com/magabrotheeeer/estate-leads/internal/http/interceptor"
	"github.com/magabrotheeeer/estate-leads/internal/http/middlewarectx"
	jwtMaker "github.com/magabrotheeeer/estate-leads/internal/lib/jwt"
	authsvc "github.com/magabrotheeeer/estate-leads/internal/services/auth"
	billingsvc "github.com/magabrotheeeer/estate-leads/internal/services/billing"
	catalogsvc "github.com/magabrotheeeer/estate-leads/internal/services/catalog"
	tiersvc "github.com/magabrotheeeer/estate-leads/internal/services/tier"
	trialsvc "github.com/magabrotheeeer/estate-leads/internal/services/trial"
)

// Services собирает бизнес-сервисы, которые обслуживают маршруты.
type Services struct {
	Tier    *tiersvc.Service
	Trial   *trialsvc.Service
	Catalog *catalogsvc.Service
	Auth    *authsvc.Service
	Billing *billingsvc.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services, maker jwtMaker.Maker, webhookSecret string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(1, 3)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Get("/masking/rules", maskingrules.New(logger).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Каталог доступен и гостям: уровень доступа вычисляется на
		// каждый запрос, а перехватчик маскирует ответ на границе
		// сериализации для всех уровней ниже paid.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(maker, logger))
			r.Use(middlewarectx.TierMiddleware(svc.Tier))
			r.Use(interceptor.Middleware(logger))
			r.Get("/properties", propertylist.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/properties/{id}", propertyread.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/auctions", auctionlist.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/owners", ownerlist.New(logger, svc.Catalog).ServeHTTP)
			r.Get("/loans", loanlist.New(logger, svc.Catalog).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
			r.Post("/trials", trialstart.New(logger, svc.Trial).ServeHTTP)
			r.Delete("/trials", trialcancel.New(logger, svc.Trial).ServeHTTP)
		})

		// Webhook endpoint (без аутентификации, подпись проверяет обработчик)
		r.Post("/billing/webhook", webhook.New(logger, svc.Billing, webhookSecret).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
