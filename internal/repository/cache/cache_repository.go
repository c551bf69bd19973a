package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redisConn *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redisConn.Client(),
		logger: redisConn.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func reportKey(tourID int64, start, end time.Time) string {
	return fmt.Sprintf("report:stops:%d:%s:%s",
		tourID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func leaderboardKey(tourID int64) string {
	return fmt.Sprintf("leaderboard:%d", tourID)
}

func (r *cacheRepository) GetStopOverview(ctx context.Context, tourID int64, start, end time.Time) (*domain.StopOverviewReport, error) {
	data, err := r.Get(ctx, reportKey(tourID, start, end))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var report domain.StopOverviewReport
	if err := json.Unmarshal(data, &report); err != nil {
		r.logger.Error("Failed to unmarshal report from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

func (r *cacheRepository) SetStopOverview(ctx context.Context, tourID int64, start, end time.Time, report *domain.StopOverviewReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		r.logger.Error("Failed to marshal report", zap.Error(err))
		return fmt.Errorf("marshal report: %w", err)
	}
	return r.Set(ctx, reportKey(tourID, start, end), data, ttl)
}

func (r *cacheRepository) GetLeaderboard(ctx context.Context, tourID int64) ([]domain.LeaderboardEntry, error) {
	data, err := r.Get(ctx, leaderboardKey(tourID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Error("Failed to unmarshal leaderboard from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal leaderboard: %w", err)
	}
	return entries, nil
}

func (r *cacheRepository) SetLeaderboard(ctx context.Context, tourID int64, entries []domain.LeaderboardEntry, ttl time.Duration) error {
	data, err := json.Marshal(entries)
	if err != nil {
		r.logger.Error("Failed to marshal leaderboard", zap.Error(err))
		return fmt.Errorf("marshal leaderboard: %w", err)
	}
	return r.Set(ctx, leaderboardKey(tourID), data, ttl)
}
