// Package estateleads собирает сервис генерации лидов: хранилище,
// кеш, брокер уведомлений, бизнес-сервисы и HTTP-сервер.
package estateleads

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/estate-leads/internal/cache"
	"github.com/magabrotheeeer/estate-leads/internal/config"
	jwtMaker "github.com/magabrotheeeer/estate-leads/internal/lib/jwt"
	"github.com/magabrotheeeer/estate-leads/internal/migrations"
	"github.com/magabrotheeeer/estate-leads/internal/rabbitmq"
	authsvc "github.com/magabrotheeeer/estate-leads/internal/services/auth"
	billingsvc "github.com/magabrotheeeer/estate-leads/internal/services/billing"
	catalogsvc "github.com/magabrotheeeer/estate-leads/internal/services/catalog"
	tiersvc "github.com/magabrotheeeer/estate-leads/internal/services/tier"
	trialsvc "github.com/magabrotheeeer/estate-leads/internal/services/trial"
	"github.com/magabrotheeeer/estate-leads/internal/storage/repository"
)

// App инкапсулирует зависимости сервиса и его HTTP-сервер.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	rabbit *amqp.Connection
}

// New инициализирует все зависимости и собирает приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetNotificationQueues())
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	maker := jwtMaker.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	tierService := tiersvc.New(db, logger)
	trialService := trialsvc.New(db, publisher, logger)
	catalogService := catalogsvc.New(db, cacheRedis, logger)
	authService := authsvc.New(db, maker, logger)
	billingService := billingsvc.New(db, trialService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Tier:    tierService,
		Trial:   trialService,
		Catalog: catalogService,
		Auth:    authService,
		Billing: billingService,
	}, maker, cfg.WebhookSecret)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		rabbit: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и корректно останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.rabbit.Close()
		_ = a.db.DB.Close()
		return err
	}
}
