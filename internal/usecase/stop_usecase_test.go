package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	apperrors "github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase"
	"github.com/tour-microservice/internal/usecase/dto"
)

// MockStopRepository is a mock of StopRepository
type MockStopRepository struct {
	mock.Mock
}

func (m *MockStopRepository) ListByTour(ctx context.Context, tourID int64) ([]domain.TourStop, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TourStop), args.Error(1)
}

func (m *MockStopRepository) GetByID(ctx context.Context, tourID, stopID int64) (*domain.TourStop, error) {
	args := m.Called(ctx, tourID, stopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TourStop), args.Error(1)
}

func (m *MockStopRepository) NextOrder(ctx context.Context, tourID int64) (int, error) {
	args := m.Called(ctx, tourID)
	return args.Int(0), args.Error(1)
}

func (m *MockStopRepository) Create(ctx context.Context, tourID int64, stop *domain.TourStop, location *domain.StopLocation, choices []domain.StopChoice) (*domain.TourStop, error) {
	args := m.Called(ctx, tourID, stop, location, choices)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TourStop), args.Error(1)
}

func (m *MockStopRepository) Update(ctx context.Context, stop *domain.TourStop, location *domain.StopLocation, choices []domain.StopChoice, routes []domain.StopRoute, syncRoutes bool) (*domain.TourStop, error) {
	args := m.Called(ctx, stop, location, choices, routes, syncRoutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TourStop), args.Error(1)
}

func (m *MockStopRepository) Delete(ctx context.Context, tourID, stopID int64) error {
	args := m.Called(ctx, tourID, stopID)
	return args.Error(0)
}

func (m *MockStopRepository) Reorder(ctx context.Context, tourID, stopID int64, order int) ([]domain.TourStop, error) {
	args := m.Called(ctx, tourID, stopID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TourStop), args.Error(1)
}

func (m *MockStopRepository) NextRouteOrder(ctx context.Context, stopID, nextStopID int64) (int, error) {
	args := m.Called(ctx, stopID, nextStopID)
	return args.Int(0), args.Error(1)
}

// MockTourRepository is a mock of TourRepository
type MockTourRepository struct {
	mock.Mock
}

func (m *MockTourRepository) List(ctx context.Context, userID int64) ([]domain.Tour, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tour), args.Error(1)
}

func (m *MockTourRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourRepository) TitleExists(ctx context.Context, title string, excludeID int64) (bool, error) {
	args := m.Called(ctx, title, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTourRepository) Create(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	args := m.Called(ctx, tour)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourRepository) Update(ctx context.Context, tour *domain.Tour) (*domain.Tour, error) {
	args := m.Called(ctx, tour)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourRepository) Archive(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTourRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}

func (m *MockTourRepository) UpdateRating(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestStopUseCase_Create(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("creates at the end of the sequence", func(t *testing.T) {
		stopRepo := &MockStopRepository{}
		tourRepo := &MockTourRepository{}
		uc := usecase.NewStopUseCase(stopRepo, tourRepo, logger)

		tourRepo.On("GetByID", ctx, int64(7)).Return(&domain.Tour{ID: 7, Title: "Old Town"}, nil)
		stopRepo.On("Create", ctx, int64(7), mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.TourStop{ID: 42, TourID: 7, Title: "Cathedral", Order: 3}, nil)

		created, err := uc.Create(ctx, 7, dto.CreateStopRequest{
			Title:        "Cathedral",
			LocationType: domain.LocationTypeMap,
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, created.Order)
		stopRepo.AssertExpectations(t)
	})

	t.Run("unknown tour fails before any write", func(t *testing.T) {
		stopRepo := &MockStopRepository{}
		tourRepo := &MockTourRepository{}
		uc := usecase.NewStopUseCase(stopRepo, tourRepo, logger)

		tourRepo.On("GetByID", ctx, int64(9)).Return(nil, apperrors.ErrTourNotFound)

		_, err := uc.Create(ctx, 9, dto.CreateStopRequest{Title: "Nowhere"})

		assert.ErrorIs(t, err, apperrors.ErrTourNotFound)
		stopRepo.AssertNotCalled(t, "Create")
	})
}

func TestStopUseCase_Update(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	existing := func() *domain.TourStop {
		return &domain.TourStop{ID: 42, TourID: 7, Title: "Cathedral", Order: 2}
	}

	t.Run("absent routes leave the route set alone", func(t *testing.T) {
		stopRepo := &MockStopRepository{}
		tourRepo := &MockTourRepository{}
		uc := usecase.NewStopUseCase(stopRepo, tourRepo, logger)

		stopRepo.On("GetByID", ctx, int64(7), int64(42)).Return(existing(), nil)
		stopRepo.On("Update", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, false).
			Return(existing(), nil)

		_, err := uc.Update(ctx, 7, 42, dto.UpdateStopRequest{Title: "Cathedral"})

		assert.NoError(t, err)
		stopRepo.AssertExpectations(t)
	})

	t.Run("empty routes slice clears the route set", func(t *testing.T) {
		stopRepo := &MockStopRepository{}
		tourRepo := &MockTourRepository{}
		uc := usecase.NewStopUseCase(stopRepo, tourRepo, logger)

		stopRepo.On("GetByID", ctx, int64(7), int64(42)).Return(existing(), nil)
		stopRepo.On("Update", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, true).
			Return(existing(), nil)

		empty := []dto.RouteInput{}
		_, err := uc.Update(ctx, 7, 42, dto.UpdateStopRequest{Title: "Cathedral", Routes: &empty})

		assert.NoError(t, err)
		stopRepo.AssertExpectations(t)
	})
}

func TestStopUseCase_Delete(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	stop := &domain.TourStop{ID: 42, TourID: 7, Title: "Cathedral"}

	refusals := []struct {
		name string
		err  error
	}{
		{"refused while a choice destination", apperrors.ErrStopIsDestination},
		{"refused while the tour start point", apperrors.ErrStopIsStartPoint},
		{"refused while the tour end point", apperrors.ErrStopIsEndPoint},
	}

	for _, tc := range refusals {
		t.Run(tc.name, func(t *testing.T) {
			stopRepo := &MockStopRepository{}
			tourRepo := &MockTourRepository{}
			uc := usecase.NewStopUseCase(stopRepo, tourRepo, logger)

			stopRepo.On("GetByID", ctx, int64(7), int64(42)).Return(stop, nil)
			stopRepo.On("Delete", ctx, int64(7), int64(42)).Return(tc.err)

			err := uc.Delete(ctx, 7, 42)

			assert.ErrorIs(t, err, tc.err)
		})
	}

	t.Run("unreferenced stop deletes cleanly", func(t *testing.T) {
		stopRepo := &MockStopRepository{}
		tourRepo := &MockTourRepository{}
		uc := usecase.NewStopUseCase(stopRepo, tourRepo, logger)

		stopRepo.On("GetByID", ctx, int64(7), int64(42)).Return(stop, nil)
		stopRepo.On("Delete", ctx, int64(7), int64(42)).Return(nil)

		assert.NoError(t, uc.Delete(ctx, 7, 42))
		stopRepo.AssertExpectations(t)
	})
}

func TestStopUseCase_ChangeOrder(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	result := []domain.TourStop{
		{ID: 42, Order: 1},
		{ID: 43, Order: 2},
	}

	t.Run("passes positive order through", func(t *testing.T) {
		stopRepo := &MockStopRepository{}
		tourRepo := &MockTourRepository{}
		uc := usecase.NewStopUseCase(stopRepo, tourRepo, logger)

		stopRepo.On("Reorder", ctx, int64(7), int64(42), 1).Return(result, nil)

		stops, err := uc.ChangeOrder(ctx, 7, 42, 1)

		assert.NoError(t, err)
		assert.Len(t, stops, 2)
	})

	t.Run("negative order is used as its absolute value", func(t *testing.T) {
		stopRepo := &MockStopRepository{}
		tourRepo := &MockTourRepository{}
		uc := usecase.NewStopUseCase(stopRepo, tourRepo, logger)

		stopRepo.On("Reorder", ctx, int64(7), int64(42), 3).Return(result, nil)

		_, err := uc.ChangeOrder(ctx, 7, 42, -3)

		assert.NoError(t, err)
		stopRepo.AssertExpectations(t)
	})
}

func TestTourUseCase_Create(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("duplicate title is rejected", func(t *testing.T) {
		stopRepo := &MockStopRepository{}
		tourRepo := &MockTourRepository{}
		uc := usecase.NewTourUseCase(tourRepo, stopRepo, logger)

		tourRepo.On("TitleExists", ctx, "Old Town", int64(0)).Return(true, nil)

		_, err := uc.Create(ctx, 1, dto.CreateTourRequest{Title: "Old Town"})

		assert.ErrorIs(t, err, apperrors.ErrTourTitleTaken)
		tourRepo.AssertNotCalled(t, "Create")
	})

	t.Run("fresh title creates the tour", func(t *testing.T) {
		stopRepo := &MockStopRepository{}
		tourRepo := &MockTourRepository{}
		uc := usecase.NewTourUseCase(tourRepo, stopRepo, logger)

		tourRepo.On("TitleExists", ctx, "Old Town", int64(0)).Return(false, nil)
		tourRepo.On("Create", ctx, mock.Anything).
			Return(&domain.Tour{ID: 5, UserID: 1, Title: "Old Town"}, nil)

		tour, err := uc.Create(ctx, 1, dto.CreateTourRequest{
			Title:       "Old Town",
			Description: "A walk through the old town.",
			PricingType: domain.PricingTypeFree,
			Type:        domain.TourTypeOutdoor,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(5), tour.ID)
	})
}
