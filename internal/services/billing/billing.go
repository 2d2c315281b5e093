// Package services содержит бизнес-логику обработки webhook-событий
// платёжного провайдера. Провайдер — источник истины по оплатам:
// сервис переводит подписки между статусами по его событиям и
// конвертирует пробный период после первой успешной оплаты.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/estate-leads/internal/lib/sl"
	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// Типы webhook-событий платёжного провайдера.
const (
	EventPaymentSucceeded    = "payment_succeeded"
	EventPaymentFailed       = "payment_failed"
	EventSubscriptionDeleted = "subscription_deleted"
)

// ErrUnknownEventType — событие неизвестного типа. Возвращается вызывающему,
// чтобы провайдер увидел ошибку и не считал событие доставленным.
var ErrUnknownEventType = errors.New("unknown webhook event type")

// WebhookEvent — разобранное тело webhook-запроса провайдера.
type WebhookEvent struct {
	Type           string `json:"type" validate:"required"`
	UserUID        string `json:"user_uid" validate:"required"`
	PlanTier       string `json:"plan_tier,omitempty"`
	BillingCycle   string `json:"billing_cycle,omitempty"`
	SubscriptionID int    `json:"subscription_id,omitempty"`
}

// Repository определяет методы хранилища для управления подписками.
type Repository interface {
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID int, status string) (int, error)
}

// TrialConverter конвертирует активный пробный период после оплаты.
type TrialConverter interface {
	Convert(ctx context.Context, userUID string, subscriptionID int) error
}

// Service применяет webhook-события к подпискам.
type Service struct {
	repo   Repository
	trials TrialConverter
	log    *slog.Logger
	now    func() time.Time
}

// New создает новый Service.
func New(repo Repository, trials TrialConverter, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		trials: trials,
		log:    log,
		now:    time.Now,
	}
}

// HandleEvent применяет событие провайдера к состоянию подписок.
//
// payment_succeeded активирует существующую подписку или создаёт новую,
// затем конвертирует активный пробный период пользователя.
// payment_failed переводит подписку в past_due, subscription_deleted —
// в cancelled. Повторная доставка события безопасна: переводы статусов
// идемпотентны, повторная конвертация пробного периода является no-op.
func (s *Service) HandleEvent(ctx context.Context, ev WebhookEvent) error {
	const op = "billing.HandleEvent"

	switch ev.Type {
	case EventPaymentSucceeded:
		return s.handlePaymentSucceeded(ctx, ev)
	case EventPaymentFailed:
		return s.transition(ctx, ev, models.SubscriptionPastDue)
	case EventSubscriptionDeleted:
		return s.transition(ctx, ev, models.SubscriptionCancelled)
	default:
		s.log.Warn("unknown webhook event type", slog.String("type", ev.Type))
		return fmt.Errorf("%s: %w: %s", op, ErrUnknownEventType, ev.Type)
	}
}

func (s *Service) handlePaymentSucceeded(ctx context.Context, ev WebhookEvent) error {
	const op = "billing.handlePaymentSucceeded"

	subID := ev.SubscriptionID
	if subID > 0 {
		if _, err := s.repo.UpdateSubscriptionStatus(ctx, subID, models.SubscriptionActive); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	} else {
		id, err := s.repo.CreateSubscription(ctx, models.Subscription{
			UserUID:      ev.UserUID,
			PlanTier:     ev.PlanTier,
			Status:       models.SubscriptionActive,
			StartDate:    s.now(),
			BillingCycle: ev.BillingCycle,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		subID = id
	}

	s.log.Info("subscription activated",
		slog.String("user_uid", ev.UserUID), slog.Int("subscription_id", subID))

	// Конвертация не должна ронять обработку события: подписка уже
	// активна, пробный период досоздастся при следующей доставке.
	if err := s.trials.Convert(ctx, ev.UserUID, subID); err != nil {
		s.log.Error("failed to convert trial after payment",
			slog.String("user_uid", ev.UserUID), sl.Err(err))
	}
	return nil
}

func (s *Service) transition(ctx context.Context, ev WebhookEvent, status string) error {
	const op = "billing.transition"

	count, err := s.repo.UpdateSubscriptionStatus(ctx, ev.SubscriptionID, status)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		s.log.Warn("webhook event for unknown subscription",
			slog.String("type", ev.Type), slog.Int("subscription_id", ev.SubscriptionID))
		return nil
	}

	s.log.Info("subscription status updated",
		slog.Int("subscription_id", ev.SubscriptionID), slog.String("status", status))
	return nil
}
