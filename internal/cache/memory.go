package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore is a process-local Store backed by ttlcache. Expired entries
// miss on read and are dropped by Purge.
type MemoryStore struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: ttlcache.New[string, []byte](
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
	}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	item := s.items.Get(key)
	if item == nil || item.IsExpired() {
		return false, nil
	}
	if err := json.Unmarshal(item.Value(), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set implements Store. A non-positive ttl never expires.
func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	s.items.Set(key, data, ttl)
	return nil
}

// DeletePrefix implements Store.
func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) error {
	for _, k := range s.items.Keys() {
		if strings.HasPrefix(k, prefix) {
			s.items.Delete(k)
		}
	}
	return nil
}

// Purge implements Store.
func (s *MemoryStore) Purge(_ context.Context) error {
	s.items.DeleteExpired()
	return nil
}

// Len is the number of stored entries.
func (s *MemoryStore) Len() int {
	return s.items.Len()
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
