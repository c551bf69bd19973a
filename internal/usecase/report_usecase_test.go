package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	apperrors "github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase"
)

// MockActivityRepository is a mock of ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) (*domain.Activity, error) {
	args := m.Called(ctx, activity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) ListByStop(ctx context.Context, stopID int64) ([]domain.Activity, error) {
	args := m.Called(ctx, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

// MockStatsRepository is a mock of StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) SumByStops(ctx context.Context, stopIDs []int64, start, end time.Time) (map[int64]domain.StopStatSum, error) {
	args := m.Called(ctx, stopIDs, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.StopStatSum), args.Error(1)
}

func (m *MockStatsRepository) Increment(ctx context.Context, stopID int64, date time.Time, timeSpent, actions int64) error {
	args := m.Called(ctx, stopID, date, timeSpent, actions)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStopOverview(ctx context.Context, tourID int64, start, end time.Time) (*domain.StopOverviewReport, error) {
	args := m.Called(ctx, tourID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StopOverviewReport), args.Error(1)
}

func (m *MockCacheRepository) SetStopOverview(ctx context.Context, tourID int64, start, end time.Time, report *domain.StopOverviewReport, ttl time.Duration) error {
	args := m.Called(ctx, tourID, start, end, report, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetLeaderboard(ctx context.Context, tourID int64) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func (m *MockCacheRepository) SetLeaderboard(ctx context.Context, tourID int64, entries []domain.LeaderboardEntry, ttl time.Duration) error {
	args := m.Called(ctx, tourID, entries, ttl)
	return args.Error(0)
}

func TestReportUseCase_StopOverview(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)
	tour := &domain.Tour{ID: 7, Title: "Old Town"}

	newUC := func(tourRepo *MockTourRepository, stopRepo *MockStopRepository, activityRepo *MockActivityRepository, statsRepo *MockStatsRepository, cacheRepo *MockCacheRepository) *usecase.ReportUseCase {
		return usecase.NewReportUseCase(tourRepo, stopRepo, activityRepo, statsRepo, cacheRepo, logger, 600*time.Second, 5*time.Minute)
	}

	t.Run("every stop appears even without traffic", func(t *testing.T) {
		tourRepo := &MockTourRepository{}
		stopRepo := &MockStopRepository{}
		activityRepo := &MockActivityRepository{}
		statsRepo := &MockStatsRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newUC(tourRepo, stopRepo, activityRepo, statsRepo, cacheRepo)

		at := start.Add(10 * time.Hour)

		tourRepo.On("GetByID", ctx, int64(7)).Return(tour, nil)
		cacheRepo.On("GetStopOverview", ctx, int64(7), start, end).Return(nil, nil)
		stopRepo.On("ListByTour", ctx, int64(7)).Return([]domain.TourStop{
			{ID: 1, Order: 1, Title: "Gate"},
			{ID: 2, Order: 2, Title: "Square"},
		}, nil)
		statsRepo.On("SumByStops", ctx, []int64{1, 2}, start, end).Return(map[int64]domain.StopStatSum{
			1: {StopID: 1, Actions: 4},
		}, nil)
		activityRepo.On("ListByStop", ctx, int64(1)).Return([]domain.Activity{
			{DeviceID: "d1", Action: domain.ActionStart, CreatedAt: at},
			{DeviceID: "d1", Action: domain.ActionStop, CreatedAt: at.Add(5 * time.Minute)},
		}, nil)
		activityRepo.On("ListByStop", ctx, int64(2)).Return([]domain.Activity{}, nil)
		cacheRepo.On("SetStopOverview", ctx, int64(7), start, end, mock.Anything, 5*time.Minute).Return(nil)

		report, err := uc.StopOverview(ctx, 7, start, end)

		assert.NoError(t, err)
		assert.Len(t, report.Stops, 2)

		gate := report.Stops[0]
		assert.Equal(t, int64(1), gate.ID)
		assert.Equal(t, 1, gate.Visits)
		assert.Equal(t, int64(5), gate.Time)
		assert.Equal(t, int64(4), gate.Actions)

		square := report.Stops[1]
		assert.Equal(t, int64(2), square.ID)
		assert.Equal(t, 0, square.Visits)
		assert.Equal(t, int64(0), square.Time)
		assert.Equal(t, int64(0), square.Actions)
	})

	t.Run("cache hit skips every query", func(t *testing.T) {
		tourRepo := &MockTourRepository{}
		stopRepo := &MockStopRepository{}
		activityRepo := &MockActivityRepository{}
		statsRepo := &MockStatsRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newUC(tourRepo, stopRepo, activityRepo, statsRepo, cacheRepo)

		cached := &domain.StopOverviewReport{Stops: []domain.StopOverview{{ID: 1, Title: "Gate"}}}

		tourRepo.On("GetByID", ctx, int64(7)).Return(tour, nil)
		cacheRepo.On("GetStopOverview", ctx, int64(7), start, end).Return(cached, nil)

		report, err := uc.StopOverview(ctx, 7, start, end)

		assert.NoError(t, err)
		assert.Equal(t, cached, report)
		stopRepo.AssertNotCalled(t, "ListByTour")
		activityRepo.AssertNotCalled(t, "ListByStop")
	})

	t.Run("unknown tour fails the whole report", func(t *testing.T) {
		tourRepo := &MockTourRepository{}
		stopRepo := &MockStopRepository{}
		activityRepo := &MockActivityRepository{}
		statsRepo := &MockStatsRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newUC(tourRepo, stopRepo, activityRepo, statsRepo, cacheRepo)

		tourRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrTourNotFound)

		_, err := uc.StopOverview(ctx, 99, start, end)

		assert.ErrorIs(t, err, apperrors.ErrTourNotFound)
	})

	t.Run("activity query failure aborts with no partial report", func(t *testing.T) {
		tourRepo := &MockTourRepository{}
		stopRepo := &MockStopRepository{}
		activityRepo := &MockActivityRepository{}
		statsRepo := &MockStatsRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := newUC(tourRepo, stopRepo, activityRepo, statsRepo, cacheRepo)

		tourRepo.On("GetByID", ctx, int64(7)).Return(tour, nil)
		cacheRepo.On("GetStopOverview", ctx, int64(7), start, end).Return(nil, nil)
		stopRepo.On("ListByTour", ctx, int64(7)).Return([]domain.TourStop{{ID: 1, Order: 1, Title: "Gate"}}, nil)
		statsRepo.On("SumByStops", ctx, []int64{1}, start, end).Return(map[int64]domain.StopStatSum{}, nil)
		activityRepo.On("ListByStop", ctx, int64(1)).Return(nil, assert.AnError)

		report, err := uc.StopOverview(ctx, 7, start, end)

		assert.Error(t, err)
		assert.Nil(t, report)
		cacheRepo.AssertNotCalled(t, "SetStopOverview")
	})
}
