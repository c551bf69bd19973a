package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	apperrors "github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase"
	"github.com/tour-microservice/internal/usecase/dto"
)

type MockScoreCardRepository struct {
	mock.Mock
}

func (m *MockScoreCardRepository) Upsert(ctx context.Context, card *domain.ScoreCard) (*domain.ScoreCard, error) {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoreCard), args.Error(1)
}

func (m *MockScoreCardRepository) Leaderboard(ctx context.Context, tourID int64, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, tourID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func TestLeaderboardUseCase_SubmitScore(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	deviceID := uuid.New()

	publishedAt := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	published := &domain.Tour{ID: 7, Title: "Old Town", PublishedAt: &publishedAt}

	newUseCase := func(scoreRepo *MockScoreCardRepository, tourRepo *MockTourRepository, cacheRepo *MockCacheRepository) *usecase.LeaderboardUseCase {
		return usecase.NewLeaderboardUseCase(scoreRepo, tourRepo, cacheRepo, logger, time.Minute)
	}

	t.Run("records the run for a published tour", func(t *testing.T) {
		scoreRepo := new(MockScoreCardRepository)
		tourRepo := new(MockTourRepository)
		cacheRepo := new(MockCacheRepository)

		tourRepo.On("GetByID", ctx, int64(7)).Return(published, nil)
		scoreRepo.On("Upsert", ctx, mock.MatchedBy(func(card *domain.ScoreCard) bool {
			return card.TourID == 7 && card.UserID == 3 &&
				card.DeviceID == deviceID && card.Points == 120 &&
				card.FinishedAt == nil
		})).Return(&domain.ScoreCard{ID: 1, TourID: 7, UserID: 3, DeviceID: deviceID, Points: 120}, nil)

		points := 120
		card, err := newUseCase(scoreRepo, tourRepo, cacheRepo).SubmitScore(ctx, 7, 3,
			dto.ScoreRequest{DeviceID: deviceID.String(), Points: &points})

		assert.NoError(t, err)
		assert.Equal(t, 120, card.Points)
		scoreRepo.AssertExpectations(t)
	})

	t.Run("marks finished runs", func(t *testing.T) {
		scoreRepo := new(MockScoreCardRepository)
		tourRepo := new(MockTourRepository)
		cacheRepo := new(MockCacheRepository)

		tourRepo.On("GetByID", ctx, int64(7)).Return(published, nil)
		scoreRepo.On("Upsert", ctx, mock.MatchedBy(func(card *domain.ScoreCard) bool {
			return card.FinishedAt != nil
		})).Return(&domain.ScoreCard{ID: 1, TourID: 7, Points: 80}, nil)

		points := 80
		_, err := newUseCase(scoreRepo, tourRepo, cacheRepo).SubmitScore(ctx, 7, 3,
			dto.ScoreRequest{DeviceID: deviceID.String(), Points: &points, Finished: true})

		assert.NoError(t, err)
		scoreRepo.AssertExpectations(t)
	})

	t.Run("rejects unpublished tours without writing", func(t *testing.T) {
		scoreRepo := new(MockScoreCardRepository)
		tourRepo := new(MockTourRepository)
		cacheRepo := new(MockCacheRepository)

		tourRepo.On("GetByID", ctx, int64(7)).Return(&domain.Tour{ID: 7, Title: "Old Town"}, nil)

		points := 50
		_, err := newUseCase(scoreRepo, tourRepo, cacheRepo).SubmitScore(ctx, 7, 3,
			dto.ScoreRequest{DeviceID: deviceID.String(), Points: &points})

		assert.ErrorIs(t, err, apperrors.ErrTourNotPublished)
		scoreRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestLeaderboardUseCase_Show(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	tour := &domain.Tour{ID: 7, Title: "Old Town"}
	entries := []domain.LeaderboardEntry{
		{UserID: 1, UserName: "Ada", Points: 200},
		{UserID: 2, UserName: "Linus", Points: 150},
	}

	t.Run("serves from cache when warm", func(t *testing.T) {
		scoreRepo := new(MockScoreCardRepository)
		tourRepo := new(MockTourRepository)
		cacheRepo := new(MockCacheRepository)

		tourRepo.On("GetByID", ctx, int64(7)).Return(tour, nil)
		cacheRepo.On("GetLeaderboard", ctx, int64(7)).Return(entries, nil)

		uc := usecase.NewLeaderboardUseCase(scoreRepo, tourRepo, cacheRepo, logger, time.Minute)
		got, err := uc.Show(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, entries, got)
		scoreRepo.AssertNotCalled(t, "Leaderboard", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("queries and caches on a miss", func(t *testing.T) {
		scoreRepo := new(MockScoreCardRepository)
		tourRepo := new(MockTourRepository)
		cacheRepo := new(MockCacheRepository)

		tourRepo.On("GetByID", ctx, int64(7)).Return(tour, nil)
		cacheRepo.On("GetLeaderboard", ctx, int64(7)).Return(nil, nil)
		scoreRepo.On("Leaderboard", ctx, int64(7), 100).Return(entries, nil)
		cacheRepo.On("SetLeaderboard", ctx, int64(7), entries, time.Minute).Return(nil)

		uc := usecase.NewLeaderboardUseCase(scoreRepo, tourRepo, cacheRepo, logger, time.Minute)
		got, err := uc.Show(ctx, 7)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		cacheRepo.AssertExpectations(t)
	})
}
