package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/worker"
	"go.uber.org/zap"
)

// statKey buckets deltas per stop per day.
type statKey struct {
	stopID int64
	day    time.Time
}

// statDelta accumulates unwritten time and action counts.
type statDelta struct {
	timeSpent int64
	actions   int64
}

// sessionKey identifies one device's presence at one stop.
type sessionKey struct {
	stopID   int64
	deviceID string
}

// SummaryWorker folds the activity stream into the per-stop daily
// aggregates. It keeps the open start event per device and stop, so
// a later stop event can be credited with the real dwell time; an
// event with no usable counterpart is credited the session fallback,
// matching how reports reconstruct visits from the raw log.
type SummaryWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	statsRepo  repository.StatsRepository

	consumerName    string
	sessionFallback time.Duration
	flushInterval   time.Duration
	maxRetries      int

	openStarts map[sessionKey]time.Time
	pending    map[statKey]*statDelta
	pendingIDs []string
}

// NewSummaryWorker creates a new SummaryWorker.
func NewSummaryWorker(
	streamRepo repository.StreamRepository,
	statsRepo repository.StatsRepository,
	consumerGroup string,
	sessionFallback time.Duration,
	flushInterval time.Duration,
	maxRetries int,
	logger *zap.Logger,
) *SummaryWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%s", hostname, uuid.NewString()[:8])

	if sessionFallback == 0 {
		sessionFallback = domain.DefaultSessionFallback
	}

	return &SummaryWorker{
		BaseWorker:      worker.NewBaseWorker("activity-summary", consumerGroup, logger),
		streamRepo:      streamRepo,
		statsRepo:       statsRepo,
		consumerName:    consumerName,
		sessionFallback: sessionFallback,
		flushInterval:   flushInterval,
		maxRetries:      maxRetries,
		openStarts:      make(map[sessionKey]time.Time),
		pending:         make(map[statKey]*statDelta),
	}
}

// Start consumes the activity stream until stopped. Deltas are
// buffered in memory and written out every flush interval; messages
// are acked only after their deltas reach the database.
func (w *SummaryWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting SummaryWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Duration("flush_interval", w.flushInterval))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.ActivityStream, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.Consume(consumeCtx, domain.ActivityStream, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			w.flush(context.Background())
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			w.flush(context.Background())
			logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.flush(ctx)

		case msg, ok := <-messages:
			if !ok {
				w.flush(context.Background())
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage folds one stream message into the pending buffer.
func (w *SummaryWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var activity domain.Activity
	if err := json.Unmarshal([]byte(msg.Data), &activity); err != nil {
		logger.Warn("Failed to parse activity message, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Ack the broken message so it does not clog the group.
		_ = w.streamRepo.Ack(ctx, domain.ActivityStream, w.ConsumerGroup(), msg.ID)
		return
	}

	// Tour-level events carry no stop to aggregate against.
	if activity.ActionableType != domain.ActionableTypeStop {
		_ = w.streamRepo.Ack(ctx, domain.ActivityStream, w.ConsumerGroup(), msg.ID)
		return
	}

	w.fold(&activity)
	w.pendingIDs = append(w.pendingIDs, msg.ID)
}

// fold applies one stop event to the open-session state and the
// pending deltas.
func (w *SummaryWorker) fold(activity *domain.Activity) {
	skey := sessionKey{stopID: activity.ActionableID, deviceID: activity.DeviceID}
	at := activity.CreatedAt.UTC()

	w.credit(activity.ActionableID, at, 0, 1)

	switch activity.Action {
	case domain.ActionStart:
		if openedAt, ok := w.openStarts[skey]; ok {
			// Two starts in a row: the first session never closed.
			w.credit(activity.ActionableID, openedAt, int64(w.sessionFallback.Seconds()), 0)
		}
		w.openStarts[skey] = at

	case domain.ActionStop:
		if openedAt, ok := w.openStarts[skey]; ok {
			dwell := int64(at.Sub(openedAt).Seconds())
			if dwell < 0 {
				dwell = int64(w.sessionFallback.Seconds())
			}
			w.credit(activity.ActionableID, openedAt, dwell, 0)
			delete(w.openStarts, skey)
		} else {
			w.credit(activity.ActionableID, at, int64(w.sessionFallback.Seconds()), 0)
		}
	}
}

// credit adds a delta to the stop's bucket for the day of at.
func (w *SummaryWorker) credit(stopID int64, at time.Time, timeSpent, actions int64) {
	key := statKey{stopID: stopID, day: at.Truncate(24 * time.Hour)}
	delta, ok := w.pending[key]
	if !ok {
		delta = &statDelta{}
		w.pending[key] = delta
	}
	delta.timeSpent += timeSpent
	delta.actions += actions
}

// flush writes the pending deltas and acks the messages behind them.
// A bucket that keeps failing past maxRetries is dropped so the
// worker cannot wedge on a single bad row.
func (w *SummaryWorker) flush(ctx context.Context) {
	logger := w.Logger()

	if len(w.pending) == 0 && len(w.pendingIDs) == 0 {
		return
	}

	logger.Debug("Flushing stat deltas",
		zap.Int("buckets", len(w.pending)),
		zap.Int("messages", len(w.pendingIDs)))

	for key, delta := range w.pending {
		var err error
		for attempt := 0; attempt <= w.maxRetries; attempt++ {
			err = w.statsRepo.Increment(ctx, key.stopID, key.day, delta.timeSpent, delta.actions)
			if err == nil {
				break
			}
			time.Sleep(time.Duration(attempt+1) * 100 * time.Millisecond)
		}
		if err != nil {
			logger.Error("Failed to write stat bucket, dropping",
				zap.Int64("stop_id", key.stopID),
				zap.Time("date", key.day),
				zap.Error(err))
		}
		delete(w.pending, key)
	}

	for _, id := range w.pendingIDs {
		if err := w.streamRepo.Ack(ctx, domain.ActivityStream, w.ConsumerGroup(), id); err != nil {
			logger.Warn("Failed to ack message", zap.String("message_id", id), zap.Error(err))
		}
	}
	w.pendingIDs = w.pendingIDs[:0]
}
