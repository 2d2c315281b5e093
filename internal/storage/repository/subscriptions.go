package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// FindActiveSubscription возвращает последнюю подписку пользователя
// в статусе active или trialing. Возвращает (nil, nil), если такой нет —
// отсутствие подписки не ошибка, а штатный результат для уровня free.
func (s *Storage) FindActiveSubscription(ctx context.Context, userUID string) (*models.Subscription, error) {
	const op = "storage.FindActiveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan_tier, status, start_date, end_date, billing_cycle, features
			  FROM subscriptions
			  WHERE user_uid = $1 AND status IN ('active', 'trialing')
			  ORDER BY start_date DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var sub models.Subscription
	var endDate sql.NullTime
	var features []byte
	if err := row.Scan(&sub.ID, &sub.UserUID, &sub.PlanTier, &sub.Status,
		&sub.StartDate, &endDate, &sub.BillingCycle, &features); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if endDate.Valid {
		sub.EndDate = &endDate.Time
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &sub.Features); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &sub, nil
}

// CreateSubscription вставляет новую подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(sub.Features)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO subscriptions (user_uid, plan_tier, status, start_date, end_date,
			      billing_cycle, features)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		sub.UserUID, sub.PlanTier, sub.Status, sub.StartDate, sub.EndDate,
		sub.BillingCycle, features).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateSubscriptionStatus переводит подписку пользователя в новый статус
// и возвращает количество изменённых строк. Записи не удаляются —
// история статусов сохраняется для аудита.
func (s *Storage) UpdateSubscriptionStatus(ctx context.Context, subscriptionID int, status string) (int, error) {
	const op = "storage.UpdateSubscriptionStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET status = $1, updated_at = now()
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, subscriptionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
