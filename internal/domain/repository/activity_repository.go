package repository

import (
	"context"
	"time"

	"github.com/tour-microservice/internal/domain"
)

// ActivityRepository reads and appends the raw tracking event log.
type ActivityRepository interface {
	// Create appends one event. Events are immutable once written.
	Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error)

	// ListByStop returns every stop event for the given stop,
	// ordered by device id then timestamp ascending - the order the
	// visit reconstruction expects.
	ListByStop(ctx context.Context, stopID int64) ([]domain.Activity, error)
}

// StatsRepository reads and writes the precomputed per-stop daily
// aggregates.
type StatsRepository interface {
	// SumByStops sums time_spent and actions per stop over the date
	// range, inclusive.
	SumByStops(ctx context.Context, stopIDs []int64, start, end time.Time) (map[int64]domain.StopStatSum, error)

	// Increment folds one observed delta into the stop's row for the
	// given day, creating it when absent.
	Increment(ctx context.Context, stopID int64, date time.Time, timeSpent, actions int64) error
}
