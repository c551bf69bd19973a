package postgres

import (
	"context"
	"fmt"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type reviewRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewReviewRepository creates the sqlx-backed ReviewRepository.
func NewReviewRepository(db *DB, logger *zap.Logger) repository.ReviewRepository {
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

func (r *reviewRepository) ListByTour(ctx context.Context, tourID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.SelectContext(ctx, &reviews,
		`SELECT id, tour_id, user_id, rating, review, created_at, updated_at
		 FROM reviews WHERE tour_id = $1
		 ORDER BY updated_at DESC`, tourID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for tour %d: %w", tourID, err)
	}
	return reviews, nil
}

// Upsert keeps one review per (tour, user): resubmitting overwrites
// the previous rating and text.
func (r *reviewRepository) Upsert(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	err := r.db.GetContext(ctx, review,
		`INSERT INTO reviews (tour_id, user_id, rating, review, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, now(), now())
		 ON CONFLICT (tour_id, user_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			review = EXCLUDED.review,
			updated_at = now()
		 RETURNING id, tour_id, user_id, rating, review, created_at, updated_at`,
		review.TourID, review.UserID, review.Rating, review.Review)
	if err != nil {
		return nil, fmt.Errorf("upsert review: %w", err)
	}
	return review, nil
}
