package postgres

import (
	"context"
	"fmt"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type scoreCardRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewScoreCardRepository creates the sqlx-backed ScoreCardRepository.
func NewScoreCardRepository(db *DB, logger *zap.Logger) repository.ScoreCardRepository {
	return &scoreCardRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes the device's card for the tour. Repeat runs keep the
// best points and the earliest finish.
func (r *scoreCardRepository) Upsert(ctx context.Context, card *domain.ScoreCard) (*domain.ScoreCard, error) {
	var saved domain.ScoreCard
	err := r.db.GetContext(ctx, &saved,
		`INSERT INTO score_cards (tour_id, user_id, device_id, points, finished_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (tour_id, device_id) DO UPDATE SET
		     user_id     = EXCLUDED.user_id,
		     points      = GREATEST(score_cards.points, EXCLUDED.points),
		     finished_at = COALESCE(score_cards.finished_at, EXCLUDED.finished_at),
		     updated_at  = now()
		 RETURNING id, tour_id, user_id, device_id, points, finished_at, created_at, updated_at`,
		card.TourID, card.UserID, card.DeviceID, card.Points, card.FinishedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert score card for tour %d device %s: %w",
			card.TourID, card.DeviceID, err)
	}
	return &saved, nil
}

// Leaderboard ranks score cards by points. Adventure tours only
// count finished runs; every other tour type counts all runs.
func (r *scoreCardRepository) Leaderboard(ctx context.Context, tourID int64, limit int) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT sc.user_id, u.name AS user_name, sc.points
		 FROM score_cards sc
		 JOIN users u ON u.id = sc.user_id
		 JOIN tours t ON t.id = sc.tour_id
		 WHERE sc.tour_id = $1
		   AND (t.type <> $2 OR sc.finished_at IS NOT NULL)
		 ORDER BY sc.points DESC
		 LIMIT $3`,
		tourID, domain.TourTypeAdventure, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard for tour %d: %w", tourID, err)
	}
	return entries, nil
}
