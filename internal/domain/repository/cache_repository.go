package repository

import (
	"context"
	"time"

	"github.com/tour-microservice/internal/domain"
)

// CacheRepository is the Redis-backed cache surface.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetStopOverview returns a cached report for the tour and date
	// range, or nil on a miss.
	GetStopOverview(ctx context.Context, tourID int64, start, end time.Time) (*domain.StopOverviewReport, error)
	SetStopOverview(ctx context.Context, tourID int64, start, end time.Time, report *domain.StopOverviewReport, ttl time.Duration) error

	GetLeaderboard(ctx context.Context, tourID int64) ([]domain.LeaderboardEntry, error)
	SetLeaderboard(ctx context.Context, tourID int64, entries []domain.LeaderboardEntry, ttl time.Duration) error
}
