package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/config"
	"github.com/AbdelrahmanAhmad99/Asiaporeair-sub002/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	seatMapTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, seatMapTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		seatMapTTL: seatMapTTL,
	}
}

func (c *RedisCache) GetSeatMap(ctx context.Context, flightInstanceID int64) (*domain.SeatMap, error) {
	data, err := c.client.Get(ctx, seatMapKey(flightInstanceID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var seatMap domain.SeatMap
	if err := json.Unmarshal(data, &seatMap); err != nil {
		return nil, err
	}
	return &seatMap, nil
}

func (c *RedisCache) SetSeatMap(ctx context.Context, seatMap *domain.SeatMap) error {
	payload, err := json.Marshal(seatMap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, seatMapKey(seatMap.FlightInstanceID), payload, c.seatMapTTL).Err()
}

func (c *RedisCache) InvalidateSeatMap(ctx context.Context, flightInstanceID int64) error {
	return c.client.Del(ctx, seatMapKey(flightInstanceID)).Err()
}

// AcquireSeatHold takes a short SetNX hold on a seat before the
// transactional write. The hold value carries the owner so a passenger
// re-assigning their own seat is not bounced off their own hold. It
// only narrows the race window; the database unique index stays
// authoritative.
func (c *RedisCache) AcquireSeatHold(ctx context.Context, flightInstanceID int64, seatID, owner string, ttl time.Duration) (bool, error) {
	key := seatHoldKey(flightInstanceID, seatID)
	ok, err := c.client.SetNX(ctx, key, owner, ttl).Result()
	if err != nil || ok {
		return ok, err
	}

	holder, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		// Hold expired between the SetNX and the read.
		return c.client.SetNX(ctx, key, owner, ttl).Result()
	}
	if err != nil {
		return false, err
	}
	return holder == owner, nil
}

func (c *RedisCache) ReleaseSeatHold(ctx context.Context, flightInstanceID int64, seatID string) error {
	return c.client.Del(ctx, seatHoldKey(flightInstanceID, seatID)).Err()
}

func seatMapKey(flightInstanceID int64) string {
	return fmt.Sprintf("cache:seatmap:%d", flightInstanceID)
}

func seatHoldKey(flightInstanceID int64, seatID string) string {
	return fmt.Sprintf("hold:flight:%d:seat:%s", flightInstanceID, seatID)
}
