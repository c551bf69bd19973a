package repository

import (
	"context"

	"github.com/tour-microservice/internal/domain"
)

// ReviewRepository persists tour reviews, one per (tour, user).
type ReviewRepository interface {
	ListByTour(ctx context.Context, tourID int64) ([]domain.Review, error)

	// Upsert creates the user's review for the tour or replaces the
	// existing one.
	Upsert(ctx context.Context, review *domain.Review) (*domain.Review, error)
}

// ScoreCardRepository stores per-device runs and reads leaderboard
// data built from them.
type ScoreCardRepository interface {
	// Upsert records a device's run through the tour. A device keeps
	// one card per tour: points keep the best run, the first recorded
	// finish sticks.
	Upsert(ctx context.Context, card *domain.ScoreCard) (*domain.ScoreCard, error)

	// Leaderboard returns the top entries for the tour ordered by
	// points descending. Adventure tours only count finished runs.
	Leaderboard(ctx context.Context, tourID int64, limit int) ([]domain.LeaderboardEntry, error)
}
