// Package services содержит бизнес-логику вычисления уровня доступа
// вызывающего по данным подписки и пробного периода.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/estate-leads/internal/lib/sl"
	"github.com/magabrotheeeer/estate-leads/internal/metrics"
	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// Repository определяет методы хранилища, нужные для вычисления уровня.
type Repository interface {
	// FindActiveSubscription возвращает подписку в статусе active или
	// trialing, либо (nil, nil), если её нет.
	FindActiveSubscription(ctx context.Context, userUID string) (*models.Subscription, error)
	// FindActiveTrial возвращает пробный период в статусе active,
	// либо (nil, nil), если его нет.
	FindActiveTrial(ctx context.Context, userUID string) (*models.Trial, error)
	// ExpireTrial переводит пробный период active -> expired.
	ExpireTrial(ctx context.Context, trialID int) error
}

// Service вычисляет эффективный уровень доступа на каждый запрос.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Resolve возвращает уровень доступа пользователя.
//
// Пустой userUID означает неаутентифицированного вызывающего — guest,
// без обращения к хранилищу. Далее: активная или trialing подписка
// даёт paid (или free для плана free); иначе активный пробный период
// с неистёкшей датой даёт trialing. Истёкший активный период лениво
// переводится в expired — повторный перевод является no-op.
//
// Любая ошибка хранилища деградирует в free: при неопределённости
// уровень занижается, никогда не завышается.
func (s *Service) Resolve(ctx context.Context, userUID string) models.Tier {
	tier := s.resolve(ctx, userUID)
	metrics.TierResolutions.WithLabelValues(string(tier)).Inc()
	return tier
}

func (s *Service) resolve(ctx context.Context, userUID string) models.Tier {
	const op = "tier.Resolve"

	if userUID == "" {
		return models.TierGuest
	}

	sub, err := s.repo.FindActiveSubscription(ctx, userUID)
	if err != nil {
		s.log.Error("failed to look up subscription, degrading to free",
			slog.String("op", op), sl.Err(err))
		metrics.TierResolutionFailures.Inc()
		return models.TierFree
	}
	if sub != nil {
		if sub.PlanTier == models.PlanFree {
			return models.TierFree
		}
		return models.TierPaid
	}

	trial, err := s.repo.FindActiveTrial(ctx, userUID)
	if err != nil {
		s.log.Error("failed to look up trial, degrading to free",
			slog.String("op", op), sl.Err(err))
		metrics.TierResolutionFailures.Inc()
		return models.TierFree
	}
	if trial == nil {
		return models.TierFree
	}

	if trial.EndDate.Before(s.now()) {
		if err := s.repo.ExpireTrial(ctx, trial.ID); err != nil {
			s.log.Warn("failed to lazily expire trial",
				slog.String("op", op), slog.Int("trial_id", trial.ID), sl.Err(err))
		}
		return models.TierFree
	}

	return models.TierTrialing
}
