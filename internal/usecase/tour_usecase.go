package usecase

import (
	"context"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	apperrors "github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// TourUseCase handles tour management: CRUD, publishing, and the
// start/end point references into the stop set.
type TourUseCase struct {
	tourRepo repository.TourRepository
	stopRepo repository.StopRepository
	logger   *zap.Logger
}

// NewTourUseCase creates a new TourUseCase.
func NewTourUseCase(
	tourRepo repository.TourRepository,
	stopRepo repository.StopRepository,
	logger *zap.Logger,
) *TourUseCase {
	return &TourUseCase{
		tourRepo: tourRepo,
		stopRepo: stopRepo,
		logger:   logger,
	}
}

func (uc *TourUseCase) List(ctx context.Context, userID int64) ([]domain.Tour, error) {
	return uc.tourRepo.List(ctx, userID)
}

// Get returns the tour with its ordered stops attached.
func (uc *TourUseCase) Get(ctx context.Context, id int64) (*domain.Tour, error) {
	tour, err := uc.tourRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stops, err := uc.stopRepo.ListByTour(ctx, id)
	if err != nil {
		return nil, err
	}
	tour.Stops = stops
	return tour, nil
}

func (uc *TourUseCase) Create(ctx context.Context, userID int64, req dto.CreateTourRequest) (*domain.Tour, error) {
	taken, err := uc.tourRepo.TitleExists(ctx, req.Title, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrTourTitleTaken
	}

	tour := &domain.Tour{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		PricingType: req.PricingType,
		Type:        req.Type,
	}

	created, err := uc.tourRepo.Create(ctx, tour)
	if err != nil {
		uc.logger.Error("failed to create tour", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("tour created",
		zap.Int64("tour_id", created.ID),
		zap.String("title", created.Title))
	return created, nil
}

func (uc *TourUseCase) Update(ctx context.Context, id int64, req dto.UpdateTourRequest) (*domain.Tour, error) {
	tour, err := uc.tourRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := uc.tourRepo.TitleExists(ctx, req.Title, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrTourTitleTaken
	}

	// Start and end points must name stops of this tour.
	if err := uc.checkPointRef(ctx, id, req.StartPointID); err != nil {
		return nil, err
	}
	if err := uc.checkPointRef(ctx, id, req.EndPointID); err != nil {
		return nil, err
	}

	tour.Title = req.Title
	tour.Description = req.Description
	tour.PricingType = req.PricingType
	tour.Type = req.Type
	tour.StartPointID = req.StartPointID
	tour.EndPointID = req.EndPointID
	tour.VideoURL = req.VideoURL
	tour.StartVideoURL = req.StartVideoURL
	tour.EndVideoURL = req.EndVideoURL
	tour.StartMessage = req.StartMessage
	tour.EndMessage = req.EndMessage
	tour.HasPrize = req.HasPrize
	tour.PrizeDetails = req.PrizeDetails
	tour.PrizeInstructions = req.PrizeInstructions
	tour.FacebookURL = req.FacebookURL
	tour.TwitterURL = req.TwitterURL
	tour.InstagramURL = req.InstagramURL

	updated, err := uc.tourRepo.Update(ctx, tour)
	if err != nil {
		uc.logger.Error("failed to update tour", zap.Int64("tour_id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (uc *TourUseCase) checkPointRef(ctx context.Context, tourID int64, stopID *int64) error {
	if stopID == nil {
		return nil
	}
	if _, err := uc.stopRepo.GetByID(ctx, tourID, *stopID); err != nil {
		return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"stop_id": *stopID,
		})
	}
	return nil
}

func (uc *TourUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.tourRepo.Archive(ctx, id); err != nil {
		uc.logger.Error("failed to archive tour", zap.Int64("tour_id", id), zap.Error(err))
		return err
	}
	uc.logger.Info("tour archived", zap.Int64("tour_id", id))
	return nil
}

func (uc *TourUseCase) Publish(ctx context.Context, id int64) error {
	return uc.tourRepo.SetPublished(ctx, id, true)
}

func (uc *TourUseCase) Unpublish(ctx context.Context, id int64) error {
	return uc.tourRepo.SetPublished(ctx, id, false)
}
