package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tour-microservice/internal/domain"
	"go.uber.org/zap"
)

type mockStatsRepository struct {
	mock.Mock
}

func (m *mockStatsRepository) SumByStops(ctx context.Context, stopIDs []int64, start, end time.Time) (map[int64]domain.StopStatSum, error) {
	args := m.Called(ctx, stopIDs, start, end)
	return args.Get(0).(map[int64]domain.StopStatSum), args.Error(1)
}

func (m *mockStatsRepository) Increment(ctx context.Context, stopID int64, date time.Time, timeSpent, actions int64) error {
	args := m.Called(ctx, stopID, date, timeSpent, actions)
	return args.Error(0)
}

type mockStreamRepository struct {
	mock.Mock
}

func (m *mockStreamRepository) PublishActivity(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *mockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *mockStreamRepository) Consume(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *mockStreamRepository) Ack(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func newTestWorker(statsRepo *mockStatsRepository, streamRepo *mockStreamRepository) *SummaryWorker {
	return NewSummaryWorker(
		streamRepo,
		statsRepo,
		"test-group",
		600*time.Second,
		time.Minute,
		1,
		zap.NewNop(),
	)
}

func event(stopID int64, deviceID, action string, at time.Time) *domain.Activity {
	return &domain.Activity{
		ActionableType: domain.ActionableTypeStop,
		ActionableID:   stopID,
		DeviceID:       deviceID,
		Action:         action,
		CreatedAt:      at,
	}
}

func TestSummaryWorker_Fold(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	day := base.Truncate(24 * time.Hour)

	t.Run("matched start stop credits real dwell", func(t *testing.T) {
		w := newTestWorker(&mockStatsRepository{}, &mockStreamRepository{})

		w.fold(event(1, "device-a", domain.ActionStart, base))
		w.fold(event(1, "device-a", domain.ActionStop, base.Add(5*time.Minute)))

		delta := w.pending[statKey{stopID: 1, day: day}]
		assert.NotNil(t, delta)
		assert.Equal(t, int64(300), delta.timeSpent)
		assert.Equal(t, int64(2), delta.actions)
		assert.Empty(t, w.openStarts)
	})

	t.Run("second start closes first session with fallback", func(t *testing.T) {
		w := newTestWorker(&mockStatsRepository{}, &mockStreamRepository{})

		w.fold(event(1, "device-a", domain.ActionStart, base))
		w.fold(event(1, "device-a", domain.ActionStart, base.Add(time.Hour)))

		delta := w.pending[statKey{stopID: 1, day: day}]
		assert.Equal(t, int64(600), delta.timeSpent)
		assert.Equal(t, int64(2), delta.actions)
		// The second start stays open.
		assert.Len(t, w.openStarts, 1)
	})

	t.Run("stop without start credits fallback", func(t *testing.T) {
		w := newTestWorker(&mockStatsRepository{}, &mockStreamRepository{})

		w.fold(event(1, "device-a", domain.ActionStop, base))

		delta := w.pending[statKey{stopID: 1, day: day}]
		assert.Equal(t, int64(600), delta.timeSpent)
		assert.Equal(t, int64(1), delta.actions)
	})

	t.Run("devices do not pair across each other", func(t *testing.T) {
		w := newTestWorker(&mockStatsRepository{}, &mockStreamRepository{})

		w.fold(event(1, "device-a", domain.ActionStart, base))
		w.fold(event(1, "device-b", domain.ActionStop, base.Add(time.Minute)))

		delta := w.pending[statKey{stopID: 1, day: day}]
		// device-b's orphan stop gets the fallback; device-a stays open.
		assert.Equal(t, int64(600), delta.timeSpent)
		assert.Equal(t, int64(2), delta.actions)
		assert.Len(t, w.openStarts, 1)
	})

	t.Run("dwell lands on the day the session opened", func(t *testing.T) {
		w := newTestWorker(&mockStatsRepository{}, &mockStreamRepository{})

		openedAt := time.Date(2026, 5, 10, 23, 50, 0, 0, time.UTC)
		closedAt := time.Date(2026, 5, 11, 0, 10, 0, 0, time.UTC)

		w.fold(event(1, "device-a", domain.ActionStart, openedAt))
		w.fold(event(1, "device-a", domain.ActionStop, closedAt))

		opened := w.pending[statKey{stopID: 1, day: openedAt.Truncate(24 * time.Hour)}]
		closed := w.pending[statKey{stopID: 1, day: closedAt.Truncate(24 * time.Hour)}]
		assert.Equal(t, int64(1200), opened.timeSpent)
		assert.Equal(t, int64(1), opened.actions)
		assert.Equal(t, int64(0), closed.timeSpent)
		assert.Equal(t, int64(1), closed.actions)
	})
}

func TestSummaryWorker_Flush(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	day := base.Truncate(24 * time.Hour)

	t.Run("writes deltas and acks messages", func(t *testing.T) {
		statsRepo := new(mockStatsRepository)
		streamRepo := new(mockStreamRepository)
		w := newTestWorker(statsRepo, streamRepo)

		w.fold(event(1, "device-a", domain.ActionStart, base))
		w.fold(event(1, "device-a", domain.ActionStop, base.Add(2*time.Minute)))
		w.pendingIDs = []string{"1-0", "2-0"}

		statsRepo.On("Increment", mock.Anything, int64(1), day, int64(120), int64(2)).Return(nil)
		streamRepo.On("Ack", mock.Anything, domain.ActivityStream, "test-group", "1-0").Return(nil)
		streamRepo.On("Ack", mock.Anything, domain.ActivityStream, "test-group", "2-0").Return(nil)

		w.flush(context.Background())

		statsRepo.AssertExpectations(t)
		streamRepo.AssertExpectations(t)
		assert.Empty(t, w.pending)
		assert.Empty(t, w.pendingIDs)
	})

	t.Run("nothing pending is a no-op", func(t *testing.T) {
		statsRepo := new(mockStatsRepository)
		streamRepo := new(mockStreamRepository)
		w := newTestWorker(statsRepo, streamRepo)

		w.flush(context.Background())

		statsRepo.AssertNotCalled(t, "Increment")
		streamRepo.AssertNotCalled(t, "Ack")
	})

	t.Run("failed bucket is dropped after retries", func(t *testing.T) {
		statsRepo := new(mockStatsRepository)
		streamRepo := new(mockStreamRepository)
		w := newTestWorker(statsRepo, streamRepo)

		w.fold(event(1, "device-a", domain.ActionStop, base))

		statsRepo.On("Increment", mock.Anything, int64(1), day, int64(600), int64(1)).
			Return(assert.AnError)

		w.flush(context.Background())

		statsRepo.AssertNumberOfCalls(t, "Increment", 2)
		assert.Empty(t, w.pending)
	})
}
