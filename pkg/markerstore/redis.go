// Package markerstore persists the singleton "last refreshed" marker.
// The marker lives in Redis, deliberately outside the country snapshot's
// transaction boundary: it answers "when did data last change" cheaply and
// is only best-effort consistent with the snapshot itself.
package markerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/config"
)

const lastRefreshedKey = "country-gdp:last_refreshed_at"

// Store defines the interface for the refresh-marker singleton.
type Store interface {
	SetLastRefreshed(ctx context.Context, ts time.Time) error
	GetLastRefreshed(ctx context.Context) (*time.Time, error)
}

type redisStore struct {
	client *redis.Client
}

// NewClient creates a Redis client from configuration and verifies the
// connection.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewStore creates a redis implementation of the marker store
func NewStore(client *redis.Client) *redisStore {
	return &redisStore{client: client}
}

// SetLastRefreshed upserts the marker to the given cycle timestamp.
func (s *redisStore) SetLastRefreshed(ctx context.Context, ts time.Time) error {
	value := ts.UTC().Format(time.RFC3339)
	if err := s.client.Set(ctx, lastRefreshedKey, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set refresh marker: %w", err)
	}
	return nil
}

// GetLastRefreshed returns the marker, or nil before the first refresh.
func (s *redisStore) GetLastRefreshed(ctx context.Context) (*time.Time, error) {
	value, err := s.client.Get(ctx, lastRefreshedKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh marker: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("malformed refresh marker %q: %w", value, err)
	}
	return &ts, nil
}
