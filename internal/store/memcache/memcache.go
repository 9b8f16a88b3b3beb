// Package memcache implements the slot port on memcached. Items never
// expire; eviction by the server loses the slot.
package memcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"

	applog "kakei/internal/log"
)

// Slots stores each slot as one memcached item under prefix+key.
type Slots struct {
	client *memcache.Client
	prefix string
}

// New connects to the given servers and pings them.
func New(hosts []string, prefix string) (*Slots, error) {
	ctx := context.Background()
	applog.ForComponent(ctx, applog.ComponentStorage).InfoContext(ctx, "Connecting to memcached", "hosts", hosts)
	mc := memcache.New(hosts...)
	if err := mc.Ping(); err != nil {
		return nil, fmt.Errorf("ping memcached: %w", err)
	}
	return &Slots{client: mc, prefix: prefix}, nil
}

// Get implements store.Slot
func (s *Slots) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, err := s.client.Get(s.prefix + key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("memcache get: %w", err)
	}
	return item.Value, true, nil
}

// Set implements store.Slot
func (s *Slots) Set(_ context.Context, key string, value []byte) error {
	if err := s.client.Set(&memcache.Item{Key: s.prefix + key, Value: value}); err != nil {
		return fmt.Errorf("memcache set: %w", err)
	}
	return nil
}
