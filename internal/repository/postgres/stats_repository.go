package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStatsRepository creates the sqlx-backed StatsRepository.
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *statsRepository) SumByStops(ctx context.Context, stopIDs []int64, start, end time.Time) (map[int64]domain.StopStatSum, error) {
	sums := make(map[int64]domain.StopStatSum, len(stopIDs))
	if len(stopIDs) == 0 {
		return sums, nil
	}

	query, args, err := sqlx.In(
		`SELECT stop_id,
			COALESCE(SUM(time_spent), 0) AS time_spent,
			COALESCE(SUM(actions), 0) AS actions
		 FROM stop_stats
		 WHERE stop_id IN (?) AND date BETWEEN ? AND ?
		 GROUP BY stop_id`,
		stopIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("build stat sum query: %w", err)
	}

	var rows []domain.StopStatSum
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("sum stop stats: %w", err)
	}

	for _, row := range rows {
		sums[row.StopID] = row
	}
	return sums, nil
}

func (r *statsRepository) Increment(ctx context.Context, stopID int64, date time.Time, timeSpent, actions int64) error {
	day := date.UTC().Truncate(24 * time.Hour)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stop_stats (stop_id, date, time_spent, actions)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (stop_id, date) DO UPDATE SET
			time_spent = stop_stats.time_spent + EXCLUDED.time_spent,
			actions = stop_stats.actions + EXCLUDED.actions`,
		stopID, day, timeSpent, actions)
	if err != nil {
		return fmt.Errorf("increment stats for stop %d: %w", stopID, err)
	}

	r.logger.Debug("stop stats incremented",
		zap.Int64("stop_id", stopID),
		zap.Time("date", day),
		zap.Int64("time_spent", timeSpent),
		zap.Int64("actions", actions),
	)
	return nil
}
