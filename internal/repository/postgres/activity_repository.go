package postgres

import (
	"context"
	"fmt"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type activityRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewActivityRepository creates the sqlx-backed ActivityRepository.
func NewActivityRepository(db *DB, logger *zap.Logger) repository.ActivityRepository {
	return &activityRepository{
		db:     db,
		logger: logger,
	}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	err := r.db.GetContext(ctx, activity,
		`INSERT INTO activities (actionable_type, actionable_id, device_id, action, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, actionable_type, actionable_id, device_id, action, created_at`,
		activity.ActionableType, activity.ActionableID, activity.DeviceID,
		activity.Action, activity.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	return activity, nil
}

// ListByStop returns events ordered by device then timestamp, the
// order the visit reconstruction walks them in.
func (r *activityRepository) ListByStop(ctx context.Context, stopID int64) ([]domain.Activity, error) {
	var activities []domain.Activity
	err := r.db.SelectContext(ctx, &activities,
		`SELECT id, actionable_type, actionable_id, device_id, action, created_at
		 FROM activities
		 WHERE actionable_id = $1 AND actionable_type = $2
		 ORDER BY device_id ASC, created_at ASC`,
		stopID, domain.ActionableTypeStop)
	if err != nil {
		return nil, fmt.Errorf("list activities for stop %d: %w", stopID, err)
	}
	return activities, nil
}
