// Package memory provides an in-process exporter that keeps every
// snapshot it receives. Useful for development and tests.
package memory

import (
	"context"
	"sync"

	"kakei/internal/core"
	ports "kakei/internal/sheets"
)

var _ ports.Exporter = (*Exporter)(nil)

type Exporter struct {
	mu        sync.Mutex
	snapshots [][]core.Record
	err       error
}

func New() *Exporter { return &Exporter{} }

// FailWith makes subsequent exports return err. Pass nil to recover.
func (e *Exporter) FailWith(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

// Export stores a copy of records.
func (e *Exporter) Export(_ context.Context, records []core.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.snapshots = append(e.snapshots, append([]core.Record{}, records...))
	return nil
}

// Calls returns how many exports succeeded.
func (e *Exporter) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.snapshots)
}

// Last returns the most recent snapshot, or nil if none.
func (e *Exporter) Last() []core.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.snapshots) == 0 {
		return nil
	}
	return append([]core.Record{}, e.snapshots[len(e.snapshots)-1]...)
}
