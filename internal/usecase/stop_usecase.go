package usecase

import (
	"context"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// StopUseCase orchestrates stop sequencing: ordered creation,
// transactional updates of the choice and route sets, guarded
// deletion, and insert-and-shift reordering.
type StopUseCase struct {
	stopRepo repository.StopRepository
	tourRepo repository.TourRepository
	logger   *zap.Logger
}

// NewStopUseCase creates a new StopUseCase.
func NewStopUseCase(
	stopRepo repository.StopRepository,
	tourRepo repository.TourRepository,
	logger *zap.Logger,
) *StopUseCase {
	return &StopUseCase{
		stopRepo: stopRepo,
		tourRepo: tourRepo,
		logger:   logger,
	}
}

func (uc *StopUseCase) List(ctx context.Context, tourID int64) ([]domain.TourStop, error) {
	if _, err := uc.tourRepo.GetByID(ctx, tourID); err != nil {
		return nil, err
	}
	return uc.stopRepo.ListByTour(ctx, tourID)
}

func (uc *StopUseCase) Get(ctx context.Context, tourID, stopID int64) (*domain.TourStop, error) {
	return uc.stopRepo.GetByID(ctx, tourID, stopID)
}

func (uc *StopUseCase) Create(ctx context.Context, tourID int64, req dto.CreateStopRequest) (*domain.TourStop, error) {
	if _, err := uc.tourRepo.GetByID(ctx, tourID); err != nil {
		return nil, err
	}

	stop := &domain.TourStop{
		Title:        req.Title,
		Description:  req.Description,
		LocationType: req.LocationType,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PlayRadius:   req.PlayRadius,
	}

	created, err := uc.stopRepo.Create(ctx, tourID, stop,
		locationFromInput(req.Location), choicesFromInput(req.Choices))
	if err != nil {
		uc.logger.Error("failed to create stop",
			zap.Int64("tour_id", tourID),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("stop created",
		zap.Int64("tour_id", tourID),
		zap.Int64("stop_id", created.ID),
		zap.Int("order", created.Order))
	return created, nil
}

func (uc *StopUseCase) Update(ctx context.Context, tourID, stopID int64, req dto.UpdateStopRequest) (*domain.TourStop, error) {
	existing, err := uc.stopRepo.GetByID(ctx, tourID, stopID)
	if err != nil {
		return nil, err
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.LocationType = req.LocationType
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.PlayRadius = req.PlayRadius

	var routes []domain.StopRoute
	syncRoutes := req.Routes != nil
	if syncRoutes {
		routes = routesFromInput(*req.Routes)
	}

	updated, err := uc.stopRepo.Update(ctx, existing,
		locationFromInput(req.Location), choicesFromInput(req.Choices), routes, syncRoutes)
	if err != nil {
		uc.logger.Error("failed to update stop",
			zap.Int64("stop_id", stopID),
			zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// Delete archives the stop. The repository refuses when the stop is
// still a choice destination, a tour start point, or a tour end
// point - in that order, each with its own error.
func (uc *StopUseCase) Delete(ctx context.Context, tourID, stopID int64) error {
	if _, err := uc.stopRepo.GetByID(ctx, tourID, stopID); err != nil {
		return err
	}

	if err := uc.stopRepo.Delete(ctx, tourID, stopID); err != nil {
		uc.logger.Warn("stop delete refused or failed",
			zap.Int64("stop_id", stopID),
			zap.Error(err))
		return err
	}

	uc.logger.Info("stop archived", zap.Int64("stop_id", stopID))
	return nil
}

// ChangeOrder moves the stop to the requested position. A negative
// requested order is treated as its absolute value - longstanding
// behavior callers rely on, kept as is.
func (uc *StopUseCase) ChangeOrder(ctx context.Context, tourID, stopID int64, requestedOrder int) ([]domain.TourStop, error) {
	order := requestedOrder
	if order < 0 {
		order = -order
	}

	stops, err := uc.stopRepo.Reorder(ctx, tourID, stopID, order)
	if err != nil {
		uc.logger.Error("failed to reorder stop",
			zap.Int64("tour_id", tourID),
			zap.Int64("stop_id", stopID),
			zap.Int("order", order),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("stop order changed",
		zap.Int64("tour_id", tourID),
		zap.Int64("stop_id", stopID),
		zap.Int("order", order))
	return stops, nil
}

func locationFromInput(in *dto.LocationInput) *domain.StopLocation {
	if in == nil {
		return nil
	}
	return &domain.StopLocation{
		Address1:  in.Address1,
		Address2:  in.Address2,
		City:      in.City,
		State:     in.State,
		Zipcode:   in.Zipcode,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
}

func choicesFromInput(in []dto.ChoiceInput) []domain.StopChoice {
	choices := make([]domain.StopChoice, 0, len(in))
	for _, c := range in {
		choices = append(choices, domain.StopChoice{
			Prompt:     c.Prompt,
			NextStopID: c.NextStopID,
		})
	}
	return choices
}

func routesFromInput(in []dto.RouteInput) []domain.StopRoute {
	routes := make([]domain.StopRoute, 0, len(in))
	for _, r := range in {
		routes = append(routes, domain.StopRoute{
			ID:         r.ID,
			NextStopID: r.NextStopID,
			Order:      r.Order,
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
		})
	}
	return routes
}
