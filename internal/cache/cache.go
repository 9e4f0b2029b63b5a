// Package cache provides the key/value-with-TTL store the API layer
// uses to serve snapshots without re-collecting on every request. Two
// backends exist: an in-process map for single-instance deployments and
// Redis for shared deployments.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with per-entry TTL. Get returns ok=false
// for both missing and expired keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
