package usecase

import (
	"context"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	apperrors "github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ReviewUseCase handles tour reviews. A user keeps one review per
// tour; submitting again replaces it. Every change refreshes the
// tour's aggregate rating.
type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	tourRepo   repository.TourRepository
	logger     *zap.Logger
}

// NewReviewUseCase creates a new ReviewUseCase.
func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	tourRepo repository.TourRepository,
	logger *zap.Logger,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		tourRepo:   tourRepo,
		logger:     logger,
	}
}

func (uc *ReviewUseCase) List(ctx context.Context, tourID int64) ([]domain.Review, error) {
	if _, err := uc.tourRepo.GetByID(ctx, tourID); err != nil {
		return nil, err
	}
	return uc.reviewRepo.ListByTour(ctx, tourID)
}

// Submit stores the user's review. Unpublished tours are invisible
// to mobile users, so reviewing one reads as not found.
func (uc *ReviewUseCase) Submit(ctx context.Context, tourID, userID int64, req dto.ReviewRequest) (*domain.Review, error) {
	tour, err := uc.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if !tour.IsPublished() {
		return nil, apperrors.ErrTourNotPublished
	}

	review := &domain.Review{
		TourID: tourID,
		UserID: userID,
		Rating: *req.Rating,
		Review: req.Review,
	}

	saved, err := uc.reviewRepo.Upsert(ctx, review)
	if err != nil {
		uc.logger.Error("failed to save review",
			zap.Int64("tour_id", tourID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	if err := uc.tourRepo.UpdateRating(ctx, tourID); err != nil {
		uc.logger.Error("failed to refresh tour rating",
			zap.Int64("tour_id", tourID),
			zap.Error(err))
		return nil, err
	}

	return saved, nil
}
