package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/incident_reporting_system/internal/service"
)

const safetyTipsKey = "safety_tips"

// SafetyTipsCache хранит советы по безопасности в Redis
type SafetyTipsCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewSafetyTipsCache(redisClient *redis.Client, ttl time.Duration) service.TipsCache {
	return &SafetyTipsCache{redisClient: redisClient, ttl: ttl}
}

// GetSafetyTips возвращает закешированные советы; промах дает nil, nil
func (c *SafetyTipsCache) GetSafetyTips(ctx context.Context) ([]string, error) {
	val, err := c.redisClient.Get(ctx, safetyTipsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get safety tips from cache: %w", err)
	}
	var tips []string
	if err := json.Unmarshal(val, &tips); err != nil {
		return nil, fmt.Errorf("failed to unmarshal safety tips: %w", err)
	}
	return tips, nil
}

// SetSafetyTips сохраняет советы с TTL
func (c *SafetyTipsCache) SetSafetyTips(ctx context.Context, tips []string) error {
	val, err := json.Marshal(tips)
	if err != nil {
		return fmt.Errorf("failed to marshal safety tips: %w", err)
	}
	if err := c.redisClient.Set(ctx, safetyTipsKey, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set safety tips in cache: %w", err)
	}
	return nil
}
