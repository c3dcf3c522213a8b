package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/logger"
)

// ProfileCache caches client rows, client type included.
type ProfileCache interface {
	Get(ctx context.Context, clientID uuid.UUID) (*types.Client, bool, error)
	Set(ctx context.Context, client *types.Client) error
	Invalidate(ctx context.Context, clientID uuid.UUID) error
}

type profileCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

const DefaultProfileTTL = 5 * time.Minute

func NewProfileCache(rdb *goredis.Client, ttl time.Duration, log *logger.Logger) ProfileCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &profileCache{log: log.With("service", "RedisProfileCache"), rdb: rdb, ttl: ttl}
}

func profileKey(clientID uuid.UUID) string {
	return "gmb:client:" + clientID.String()
}

func (c *profileCache) Get(ctx context.Context, clientID uuid.UUID) (*types.Client, bool, error) {
	raw, err := c.rdb.Get(ctx, profileKey(clientID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get profile: %w", err)
	}
	var client types.Client
	if err := json.Unmarshal(raw, &client); err != nil {
		// A bad entry is a miss; drop it so the next read repopulates.
		c.log.Warn("discarding undecodable profile cache entry", "client_id", clientID, "error", err)
		_ = c.rdb.Del(ctx, profileKey(clientID)).Err()
		return nil, false, nil
	}
	return &client, true, nil
}

func (c *profileCache) Set(ctx context.Context, client *types.Client) error {
	if client == nil || client.ID == uuid.Nil {
		return nil
	}
	raw, err := json.Marshal(client)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, profileKey(client.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set profile: %w", err)
	}
	return nil
}

func (c *profileCache) Invalidate(ctx context.Context, clientID uuid.UUID) error {
	if err := c.rdb.Del(ctx, profileKey(clientID)).Err(); err != nil {
		return fmt.Errorf("redis del profile: %w", err)
	}
	return nil
}
