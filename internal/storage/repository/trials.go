package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/estate-leads/internal/models"
)

// FindActiveTrial возвращает пробный период пользователя в статусе active.
// Возвращает (nil, nil), если такого нет.
func (s *Storage) FindActiveTrial(ctx context.Context, userUID string) (*models.Trial, error) {
	const op = "storage.FindActiveTrial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, trial_type, subscription_id, start_date, end_date, status, usage_stats
			  FROM trials
			  WHERE user_uid = $1 AND status = 'active'
			  ORDER BY start_date DESC
			  LIMIT 1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var trial models.Trial
	var subscriptionID sql.NullInt64
	var usageStats []byte
	if err := row.Scan(&trial.ID, &trial.UserUID, &trial.TrialType, &subscriptionID,
		&trial.StartDate, &trial.EndDate, &trial.Status, &usageStats); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if subscriptionID.Valid {
		id := int(subscriptionID.Int64)
		trial.SubscriptionID = &id
	}
	if len(usageStats) > 0 {
		if err := json.Unmarshal(usageStats, &trial.UsageStats); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return &trial, nil
}

// CreateTrial вставляет новый пробный период и возвращает его ID.
// Частичный уникальный индекс trials_one_active_per_user гарантирует,
// что при гонке двух параллельных вставок вторая завершится нарушением
// уникальности, а не дубликатом.
func (s *Storage) CreateTrial(ctx context.Context, trial models.Trial) (int, error) {
	const op = "storage.CreateTrial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	usageStats, err := json.Marshal(trial.UsageStats)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO trials (user_uid, trial_type, start_date, end_date, status, usage_stats)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		trial.UserUID, trial.TrialType, trial.StartDate, trial.EndDate,
		trial.Status, usageStats).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ExpireTrial переводит пробный период из active в expired.
// Идемпотентна: повторный вызов не меняет уже истёкшую запись.
func (s *Storage) ExpireTrial(ctx context.Context, trialID int) error {
	const op = "storage.ExpireTrial"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE trials
			  SET status = 'expired'
			  WHERE id = $1 AND status = 'active'`
	if _, err := s.DB.ExecContext(ctx, query, trialID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CancelActiveTrial переводит активный пробный период пользователя
// в cancelled и возвращает количество изменённых строк. Ноль строк —
// не ошибка: отмена без активного периода считается успешной.
func (s *Storage) CancelActiveTrial(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CancelActiveTrial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE trials
			  SET status = 'cancelled'
			  WHERE user_uid = $1 AND status = 'active'`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ConvertActiveTrial переводит активный пробный период пользователя
// в converted и связывает его с подтверждённой подпиской.
func (s *Storage) ConvertActiveTrial(ctx context.Context, userUID string, subscriptionID int) (int, error) {
	const op = "storage.ConvertActiveTrial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE trials
			  SET status = 'converted', subscription_id = $2
			  WHERE user_uid = $1 AND status = 'active'`
	result, err := s.DB.ExecContext(ctx, query, userUID, subscriptionID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
