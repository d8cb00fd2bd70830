package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-engine/internal/domain/availability"
)

// QuickSlotCache keeps the multi-day preview per provider for a short TTL.
// Any Redis failure degrades to a miss.
type QuickSlotCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    *zap.Logger
}

func NewQuickSlotCache(client redis.Cmdable, ttl time.Duration, log *zap.Logger) *QuickSlotCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuickSlotCache{client: client, ttl: ttl, log: log}
}

func key(providerID uint) string {
	return fmt.Sprintf("booking:quick-slots:%d", providerID)
}

func (c *QuickSlotCache) Get(ctx context.Context, providerID uint) (availability.QuickSlots, bool) {
	raw, err := c.client.Get(ctx, key(providerID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("quick slots cache read failed", zap.Uint("provider_id", providerID), zap.Error(err))
		}
		return availability.QuickSlots{}, false
	}

	var qs availability.QuickSlots
	if err := json.Unmarshal(raw, &qs); err != nil {
		c.log.Warn("quick slots cache entry corrupt", zap.Uint("provider_id", providerID), zap.Error(err))
		return availability.QuickSlots{}, false
	}
	return qs, true
}

func (c *QuickSlotCache) Set(ctx context.Context, providerID uint, qs availability.QuickSlots) {
	raw, err := json.Marshal(qs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(providerID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("quick slots cache write failed", zap.Uint("provider_id", providerID), zap.Error(err))
	}
}

func (c *QuickSlotCache) Invalidate(ctx context.Context, providerID uint) {
	if err := c.client.Del(ctx, key(providerID)).Err(); err != nil {
		c.log.Warn("quick slots cache invalidation failed", zap.Uint("provider_id", providerID), zap.Error(err))
	}
}

// Nop is used when no Redis is configured.
type Nop struct{}

func (Nop) Get(context.Context, uint) (availability.QuickSlots, bool) {
	return availability.QuickSlots{}, false
}

func (Nop) Set(context.Context, uint, availability.QuickSlots) {}

func (Nop) Invalidate(context.Context, uint) {}
