package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	apperrors "github.com/tour-microservice/internal/pkg/errors"
	"go.uber.org/zap"
)

const tourColumns = `id, user_id, title, description, pricing_type, type, rating,
	published_at, start_point_id, end_point_id,
	video_url, start_video_url, end_video_url, start_message, end_message,
	has_prize, prize_details, prize_instructions,
	facebook_url, twitter_url, instagram_url,
	created_at, updated_at, deleted_at`

type tourRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTourRepository creates the sqlx-backed TourRepository.
func NewTourRepository(db *DB, logger *zap.Logger) repository.TourRepository {
	return &tourRepository{
		db:     db,
		logger: logger,
	}
}

func (r *tourRepository) List(ctx context.Context, userID int64) ([]domain.Tour, error) {
	var tours []domain.Tour
	query := `SELECT ` + tourColumns + ` FROM tours WHERE deleted_at IS NULL`
	args := []interface{}{}
	if userID != 0 {
		query += ` AND user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY title ASC`

	if err := r.db.SelectContext(ctx, &tours, query, args...); err != nil {
		return nil, fmt.Errorf("list tours: %w", err)
	}
	return tours, nil
}

func (r *tourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	var tour domain.Tour
	err := r.db.GetContext(ctx, &tour,
		`SELECT `+tourColumns+` FROM tours WHERE id = $1 AND deleted_at IS NULL`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrTourNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tour %d: %w", id, err)
	}
	return &tour, nil
}

func (r *tourRepository) TitleExists(ctx context.Context, title string, excludeID int64) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM tours
		 WHERE lower(title) = lower($1) AND id <> $2 AND deleted_at IS NULL`,
		title, excludeID)
	if err != nil {
		return false, fmt.Errorf("check tour title: %w", err)
	}
	return count > 0, nil
}

func (r *tourRepository) Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		`INSERT INTO tours (user_id, title, description, pricing_type, type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())
		 RETURNING id`,
		tour.UserID, tour.Title, tour.Description, tour.PricingType, tour.Type)
	if err != nil {
		return nil, fmt.Errorf("insert tour: %w", err)
	}

	r.logger.Debug("tour created", zap.Int64("tour_id", id))
	return r.GetByID(ctx, id)
}

func (r *tourRepository) Update(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tours SET
			title = $1, description = $2, pricing_type = $3, type = $4,
			start_point_id = $5, end_point_id = $6,
			video_url = $7, start_video_url = $8, end_video_url = $9,
			start_message = $10, end_message = $11,
			has_prize = $12, prize_details = $13, prize_instructions = $14,
			facebook_url = $15, twitter_url = $16, instagram_url = $17,
			updated_at = now()
		 WHERE id = $18 AND deleted_at IS NULL`,
		tour.Title, tour.Description, tour.PricingType, tour.Type,
		tour.StartPointID, tour.EndPointID,
		tour.VideoURL, tour.StartVideoURL, tour.EndVideoURL,
		tour.StartMessage, tour.EndMessage,
		tour.HasPrize, tour.PrizeDetails, tour.PrizeInstructions,
		tour.FacebookURL, tour.TwitterURL, tour.InstagramURL,
		tour.ID)
	if err != nil {
		return nil, fmt.Errorf("update tour %d: %w", tour.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperrors.ErrTourNotFound
	}

	return r.GetByID(ctx, tour.ID)
}

func (r *tourRepository) Archive(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tours SET deleted_at = now(), updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("archive tour %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrTourNotFound
	}
	return nil
}

func (r *tourRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	var query string
	if published {
		query = `UPDATE tours SET published_at = now(), updated_at = now()
			 WHERE id = $1 AND deleted_at IS NULL`
	} else {
		query = `UPDATE tours SET published_at = NULL, updated_at = now()
			 WHERE id = $1 AND deleted_at IS NULL`
	}

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("set tour %d published=%t: %w", id, published, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrTourNotFound
	}
	return nil
}

// UpdateRating stores the rounded average of the tour's review
// ratings, or zero when it has none.
func (r *tourRepository) UpdateRating(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tours SET rating = COALESCE((
			SELECT ROUND(AVG(rating)) FROM reviews WHERE tour_id = $1
		 ), 0), updated_at = now()
		 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("update rating for tour %d: %w", id, err)
	}
	return nil
}
