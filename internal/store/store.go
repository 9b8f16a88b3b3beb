// Package store keeps the expense record collection in a single named
// key-value slot. The whole collection is loaded on every read and replaced
// on every write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"kakei/internal/core"
	applog "kakei/internal/log"
	"kakei/internal/metrics"
)

// DefaultKey is the slot name used when none is configured.
const DefaultKey = "expenses"

// ErrCorruptSlot is returned by LoadAll when the slot holds data that does not
// decode as a record list. The slot is left as is.
var ErrCorruptSlot = errors.New("corrupt storage slot")

// Slot is the key-value persistence port. Get reports ok=false for a key that
// was never written.
type Slot interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// RecordStore reads and replaces the record collection held in one slot.
type RecordStore struct {
	slot Slot
	key  string

	// mu serializes the read-modify-write compositions of this instance.
	// Other processes sharing the slot are not covered: last write wins.
	mu sync.Mutex
}

func New(slot Slot, key string) *RecordStore {
	if key == "" {
		key = DefaultKey
	}
	return &RecordStore{slot: slot, key: key}
}

// Key returns the slot name.
func (s *RecordStore) Key() string {
	return s.key
}

// LoadAll returns the persisted collection, or an empty slice when nothing
// has been persisted yet.
func (s *RecordStore) LoadAll(ctx context.Context) ([]core.Record, error) {
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	if !ok || len(raw) == 0 {
		metrics.SetRecords(0)
		return []core.Record{}, nil
	}
	var records []core.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		applog.ForComponent(ctx, applog.ComponentStorage).ErrorContext(ctx, "Storage slot does not decode",
			"key", s.key,
			"size", len(raw),
			applog.FieldError, err)
		return nil, fmt.Errorf("%w %q: %v", ErrCorruptSlot, s.key, err)
	}
	if records == nil {
		records = []core.Record{}
	}
	metrics.SetRecords(len(records))
	return records, nil
}

// SaveAll replaces the entire persisted collection.
func (s *RecordStore) SaveAll(ctx context.Context, records []core.Record) error {
	if records == nil {
		records = []core.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := s.slot.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	metrics.SetRecords(len(records))
	return nil
}

// Add appends one record to the persisted collection.
func (s *RecordStore) Add(ctx context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	records = append(records, r)
	return s.SaveAll(ctx, records)
}

// Remove drops every record with the given id. Removing an absent id is a
// no-op; removed reports whether anything was dropped.
func (s *RecordStore) Remove(ctx context.Context, id int64) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.LoadAll(ctx)
	if err != nil {
		return false, err
	}
	kept := records[:0]
	for _, r := range records {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false, nil
	}
	if err := s.SaveAll(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// AddNew assigns an id to r and appends it in one locked step. The id is the
// creation time in milliseconds, bumped past the current maximum so ids stay
// unique and non-decreasing.
func (s *RecordStore) AddNew(ctx context.Context, r core.Record, now time.Time) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.LoadAll(ctx)
	if err != nil {
		return core.Record{}, err
	}
	r.ID = NextID(records, now)
	records = append(records, r)
	if err := s.SaveAll(ctx, records); err != nil {
		return core.Record{}, err
	}
	return r, nil
}

// NextID returns the id for a record created at now.
func NextID(records []core.Record, now time.Time) int64 {
	id := now.UnixMilli()
	for _, r := range records {
		if r.ID >= id {
			id = r.ID + 1
		}
	}
	return id
}
