package memory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Slots is an in-process key-value store. Values are copied on the way in
// and out so callers cannot alias stored bytes.
type Slots struct {
	mu     sync.Mutex
	values map[string][]byte
}

func New() *Slots {
	return &Slots{values: make(map[string][]byte)}
}

// NewFromDir seeds one slot per *.json file in base, named by the file stem.
// A missing or unreadable directory yields an empty store.
func NewFromDir(base string) *Slots {
	s := New()
	entries, err := os.ReadDir(base)
	if err != nil {
		return s
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(base, e.Name()))
		if err != nil {
			continue
		}
		s.values[strings.TrimSuffix(e.Name(), ".json")] = data
	}
	return s
}

func (s *Slots) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Slots) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}
