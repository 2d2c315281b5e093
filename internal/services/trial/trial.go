// Package services содержит бизнес-логику жизненного цикла пробных периодов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/estate-leads/internal/lib/sl"
	"github.com/magabrotheeeer/estate-leads/internal/models"
	"github.com/magabrotheeeer/estate-leads/internal/storage/repository"
)

// Бизнес-ошибки жизненного цикла. Возвращаются вызывающему как именованные
// отказы, повтор запроса не поможет.
var (
	// ErrAlreadyTrialing — у пользователя уже есть активный пробный период.
	ErrAlreadyTrialing = errors.New("user already has an active trial")
	// ErrAlreadySubscribed — у пользователя уже есть активная подписка.
	ErrAlreadySubscribed = errors.New("user already has an active subscription")
	// ErrUnknownPlan — запрошенный план не поддерживает пробный период.
	ErrUnknownPlan = errors.New("unknown trial plan")
)

// planDurations задаёт длительность пробного периода по плану.
var planDurations = map[string]int{
	models.PlanBasic:      7,
	models.PlanPremium:    14,
	models.PlanEnterprise: 30,
}

// Repository определяет методы хранилища для пробных периодов.
type Repository interface {
	FindActiveTrial(ctx context.Context, userUID string) (*models.Trial, error)
	FindActiveSubscription(ctx context.Context, userUID string) (*models.Subscription, error)
	CreateTrial(ctx context.Context, trial models.Trial) (int, error)
	CancelActiveTrial(ctx context.Context, userUID string) (int, error)
	ConvertActiveTrial(ctx context.Context, userUID string, subscriptionID int) (int, error)
}

// Publisher публикует события жизненного цикла в очередь уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Event — событие жизненного цикла пробного периода для очереди уведомлений.
type Event struct {
	Kind           string `json:"kind"` // started, cancelled, converted
	UserUID        string `json:"user_uid"`
	Plan           string `json:"plan,omitempty"`
	TrialID        int    `json:"trial_id,omitempty"`
	SubscriptionID int    `json:"subscription_id,omitempty"`
}

// Service реализует операции старта, отмены и конвертации пробного периода.
type Service struct {
	repo      Repository
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// New создает новый Service. publisher может быть nil — события тогда
// не публикуются (например, в тестах).
func New(repo Repository, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Start создаёт активный пробный период для пользователя.
//
// Предусловия проверяются по порядку: нет активного пробного периода,
// нет активной или trialing подписки. Проверки выполняются до вставки,
// но гонку двух одновременных запросов разрешает уникальный индекс
// хранилища: проигравшая вставка возвращает ErrAlreadyTrialing, дубликат
// не создаётся.
func (s *Service) Start(ctx context.Context, userUID, plan string) (*models.Trial, error) {
	const op = "trial.Start"

	days, ok := planDurations[plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	existing, err := s.repo.FindActiveTrial(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		return nil, ErrAlreadyTrialing
	}

	sub, err := s.repo.FindActiveSubscription(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sub != nil {
		return nil, ErrAlreadySubscribed
	}

	start := s.now()
	trial := models.Trial{
		UserUID:    userUID,
		TrialType:  plan,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, days),
		Status:     models.TrialActive,
		UsageStats: map[string]any{},
	}

	id, err := s.repo.CreateTrial(ctx, trial)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyTrialing
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	trial.ID = id

	s.log.Info("trial started",
		slog.String("user_uid", userUID), slog.String("plan", plan), slog.Int("trial_id", id))
	s.publish(Event{Kind: "started", UserUID: userUID, Plan: plan, TrialID: id})

	return &trial, nil
}

// Cancel переводит активный пробный период пользователя в cancelled.
// Идемпотентна: отсутствие активного периода считается успехом.
func (s *Service) Cancel(ctx context.Context, userUID string) error {
	const op = "trial.Cancel"

	count, err := s.repo.CancelActiveTrial(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		s.log.Info("no active trial to cancel", slog.String("user_uid", userUID))
		return nil
	}

	s.log.Info("trial cancelled", slog.String("user_uid", userUID))
	s.publish(Event{Kind: "cancelled", UserUID: userUID})
	return nil
}

// Convert переводит активный пробный период в converted и связывает его
// с подтверждённой подпиской. Вызывается при webhook-событии об успешной
// оплате. Отсутствие активного периода не ошибка: оплата могла прийти
// без предшествующего пробного периода.
func (s *Service) Convert(ctx context.Context, userUID string, subscriptionID int) error {
	const op = "trial.Convert"

	count, err := s.repo.ConvertActiveTrial(ctx, userUID, subscriptionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		s.log.Info("no active trial to convert", slog.String("user_uid", userUID))
		return nil
	}

	s.log.Info("trial converted",
		slog.String("user_uid", userUID), slog.Int("subscription_id", subscriptionID))
	s.publish(Event{Kind: "converted", UserUID: userUID, SubscriptionID: subscriptionID})
	return nil
}

// publish отправляет событие в очередь уведомлений. Сбой публикации
// логируется и не прерывает операцию.
func (s *Service) publish(ev Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish("trial", ev); err != nil {
		s.log.Warn("failed to publish trial event", slog.String("kind", ev.Kind), sl.Err(err))
	}
}
