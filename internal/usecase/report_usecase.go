package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

// ReportUseCase builds the stop overview report: per-stop visit and
// dwell-time figures reconstructed from the raw event log, next to
// action counts summed from the precomputed daily aggregates.
type ReportUseCase struct {
	tourRepo     repository.TourRepository
	stopRepo     repository.StopRepository
	activityRepo repository.ActivityRepository
	statsRepo    repository.StatsRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger

	sessionFallback time.Duration
	cacheTTL        time.Duration
}

// NewReportUseCase creates a new ReportUseCase. sessionFallback is
// the dwell time credited to unmatched tracking events.
func NewReportUseCase(
	tourRepo repository.TourRepository,
	stopRepo repository.StopRepository,
	activityRepo repository.ActivityRepository,
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	sessionFallback time.Duration,
	cacheTTL time.Duration,
) *ReportUseCase {
	if sessionFallback == 0 {
		sessionFallback = domain.DefaultSessionFallback
	}
	return &ReportUseCase{
		tourRepo:        tourRepo,
		stopRepo:        stopRepo,
		activityRepo:    activityRepo,
		statsRepo:       statsRepo,
		cacheRepo:       cacheRepo,
		logger:          logger,
		sessionFallback: sessionFallback,
		cacheTTL:        cacheTTL,
	}
}

// StopOverview generates the report for a tour over an inclusive
// date range. Every live stop appears, in tour order, with zeroed
// metrics when it saw no traffic. Any query failure fails the whole
// report; there is no partial output.
func (uc *ReportUseCase) StopOverview(ctx context.Context, tourID int64, start, end time.Time) (*domain.StopOverviewReport, error) {
	if _, err := uc.tourRepo.GetByID(ctx, tourID); err != nil {
		return nil, err
	}

	if cached, err := uc.cacheRepo.GetStopOverview(ctx, tourID, start, end); err == nil && cached != nil {
		uc.logger.Debug("stop overview served from cache", zap.Int64("tour_id", tourID))
		return cached, nil
	} else if err != nil {
		uc.logger.Warn("failed to read report cache", zap.Error(err))
	}

	stops, err := uc.stopRepo.ListByTour(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("load stops for report: %w", err)
	}

	stopIDs := make([]int64, len(stops))
	for i, stop := range stops {
		stopIDs[i] = stop.ID
	}

	sums, err := uc.statsRepo.SumByStops(ctx, stopIDs, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum stop stats: %w", err)
	}

	report := &domain.StopOverviewReport{
		Stops: make([]domain.StopOverview, 0, len(stops)),
	}

	for _, stop := range stops {
		events, err := uc.activityRepo.ListByStop(ctx, stop.ID)
		if err != nil {
			return nil, fmt.Errorf("load activities for stop %d: %w", stop.ID, err)
		}

		summary := domain.ReconstructVisits(events, uc.sessionFallback)

		report.Stops = append(report.Stops, domain.StopOverview{
			ID:      stop.ID,
			Order:   stop.Order,
			Title:   stop.Title,
			Time:    summary.Minutes(),
			Visits:  summary.Visits,
			Actions: sums[stop.ID].Actions,
		})
	}

	if err := uc.cacheRepo.SetStopOverview(ctx, tourID, start, end, report, uc.cacheTTL); err != nil {
		uc.logger.Warn("failed to cache stop overview", zap.Error(err))
	}

	return report, nil
}
