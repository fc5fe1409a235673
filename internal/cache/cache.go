// Package cache memoizes computed insight views. Values are stored as JSON so
// the in-memory and Redis stores behave the same.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store is a TTL key/value cache.
type Store interface {
	// Get decodes the value at key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// DeletePrefix removes every key that starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	// Purge drops expired entries.
	Purge(ctx context.Context) error
	Close() error
}

// Key builds a memo key of the form insights:<user>:<view>:<period>.
func Key(userID, view, period string) string {
	return fmt.Sprintf("insights:%s:%s:%s", userID, view, period)
}

// UserPrefix is the prefix shared by every key of one user.
func UserPrefix(userID string) string {
	return "insights:" + userID + ":"
}

// New returns a store for the named driver: "memory" or "redis".
func New(driver string, opts RedisOptions) (Store, error) {
	switch strings.ToLower(driver) {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(opts)
	}
	return nil, fmt.Errorf("unsupported cache driver %q", driver)
}
