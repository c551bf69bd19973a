package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	apperrors "github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// leaderboardLimit caps the number of ranked entries per tour.
const leaderboardLimit = 100

// LeaderboardUseCase serves a tour's ranked score list, briefly
// cached since it is read far more often than it changes.
type LeaderboardUseCase struct {
	scoreRepo repository.ScoreCardRepository
	tourRepo  repository.TourRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewLeaderboardUseCase creates a new LeaderboardUseCase.
func NewLeaderboardUseCase(
	scoreRepo repository.ScoreCardRepository,
	tourRepo repository.TourRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *LeaderboardUseCase {
	return &LeaderboardUseCase{
		scoreRepo: scoreRepo,
		tourRepo:  tourRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// SubmitScore records the caller's run. Unpublished tours are
// invisible to mobile users, so scoring one reads as not found. The
// cached leaderboard is left to expire rather than invalidated.
func (uc *LeaderboardUseCase) SubmitScore(ctx context.Context, tourID, userID int64, req dto.ScoreRequest) (*domain.ScoreCard, error) {
	tour, err := uc.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		return nil, err
	}
	if !tour.IsPublished() {
		return nil, apperrors.ErrTourNotPublished
	}

	deviceID, err := uuid.Parse(req.DeviceID)
	if err != nil {
		return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"device_id": "must be a UUID",
		})
	}

	card := &domain.ScoreCard{
		TourID:   tourID,
		UserID:   userID,
		DeviceID: deviceID,
		Points:   *req.Points,
	}
	if req.Finished {
		now := time.Now().UTC()
		card.FinishedAt = &now
	}

	saved, err := uc.scoreRepo.Upsert(ctx, card)
	if err != nil {
		uc.logger.Error("failed to save score card",
			zap.Int64("tour_id", tourID),
			zap.String("device_id", req.DeviceID),
			zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (uc *LeaderboardUseCase) Show(ctx context.Context, tourID int64) ([]domain.LeaderboardEntry, error) {
	if _, err := uc.tourRepo.GetByID(ctx, tourID); err != nil {
		return nil, err
	}

	if cached, err := uc.cacheRepo.GetLeaderboard(ctx, tourID); err == nil && cached != nil {
		uc.logger.Debug("leaderboard served from cache", zap.Int64("tour_id", tourID))
		return cached, nil
	} else if err != nil {
		uc.logger.Warn("failed to read leaderboard cache", zap.Error(err))
	}

	entries, err := uc.scoreRepo.Leaderboard(ctx, tourID, leaderboardLimit)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetLeaderboard(ctx, tourID, entries, uc.cacheTTL); err != nil {
		uc.logger.Warn("failed to cache leaderboard", zap.Error(err))
	}

	return entries, nil
}
