// Package cache holds rendered public responses between writes.
package cache

import (
	"context"
	"time"

	"github.com/folio-space/core/internal/pkg/redis"
	gocache "github.com/patrickmn/go-cache"
)

// Store is a byte cache that can be emptied in one call.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Purge(ctx context.Context) error
}

// Memory keeps entries in process.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	cleanup := 2 * ttl
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &Memory{c: gocache.New(ttl, cleanup)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.Set(key, value, ttl)
	return nil
}

func (m *Memory) Purge(context.Context) error {
	m.c.Flush()
	return nil
}

// KeyPrefix namespaces response cache keys in a shared redis.
const KeyPrefix = "folio-api-cache:"

// Redis shares entries between instances.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis { return &Redis{client: client} }

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, ok, err := r.client.GetBytes(ctx, KeyPrefix+key)
	if err != nil {
		return nil, false
	}
	return b, ok
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, KeyPrefix+key, value, ttl)
}

func (r *Redis) Purge(ctx context.Context) error {
	_, err := r.client.DeletePrefix(ctx, KeyPrefix)
	return err
}
