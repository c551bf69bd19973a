package usecase

import (
	"context"
	"time"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// ActivityUseCase records tracking events from mobile devices. Every
// event lands in the append-only log and on the activity stream the
// summary worker consumes.
type ActivityUseCase struct {
	activityRepo repository.ActivityRepository
	stopRepo     repository.StopRepository
	tourRepo     repository.TourRepository
	streamRepo   repository.StreamRepository
	logger       *zap.Logger
}

// NewActivityUseCase creates a new ActivityUseCase.
func NewActivityUseCase(
	activityRepo repository.ActivityRepository,
	stopRepo repository.StopRepository,
	tourRepo repository.TourRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *ActivityUseCase {
	return &ActivityUseCase{
		activityRepo: activityRepo,
		stopRepo:     stopRepo,
		tourRepo:     tourRepo,
		streamRepo:   streamRepo,
		logger:       logger,
	}
}

// TrackStop appends a stop-level event.
func (uc *ActivityUseCase) TrackStop(ctx context.Context, tourID, stopID int64, req dto.TrackRequest) (*domain.Activity, error) {
	if _, err := uc.stopRepo.GetByID(ctx, tourID, stopID); err != nil {
		return nil, err
	}
	return uc.track(ctx, domain.ActionableTypeStop, stopID, req)
}

// TrackTour appends a tour-level event.
func (uc *ActivityUseCase) TrackTour(ctx context.Context, tourID int64, req dto.TrackRequest) (*domain.Activity, error) {
	if _, err := uc.tourRepo.GetByID(ctx, tourID); err != nil {
		return nil, err
	}
	return uc.track(ctx, domain.ActionableTypeTour, tourID, req)
}

func (uc *ActivityUseCase) track(ctx context.Context, actionableType string, actionableID int64, req dto.TrackRequest) (*domain.Activity, error) {
	at := time.Now().UTC()
	if req.Timestamp != nil {
		at = req.Timestamp.UTC()
	}

	activity := &domain.Activity{
		ActionableType: actionableType,
		ActionableID:   actionableID,
		DeviceID:       req.DeviceID,
		Action:         req.Action,
		CreatedAt:      at,
	}

	created, err := uc.activityRepo.Create(ctx, activity)
	if err != nil {
		uc.logger.Error("failed to record activity",
			zap.String("actionable_type", actionableType),
			zap.Int64("actionable_id", actionableID),
			zap.Error(err))
		return nil, err
	}

	// The stream feed is best effort: a dropped message only skews
	// the precomputed aggregates, never the raw log.
	if err := uc.streamRepo.PublishActivity(ctx, created); err != nil {
		uc.logger.Warn("failed to publish activity to stream", zap.Error(err))
	}

	return created, nil
}
