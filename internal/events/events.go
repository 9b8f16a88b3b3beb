// Package events defines the notifications emitted after the record
// collection changes. Publication is best effort.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"kakei/internal/core"
)

type Kind string

const (
	RecordAdded   Kind = "record.added"
	RecordRemoved Kind = "record.removed"
)

// Event describes one mutation. Record is set for additions only.
type Event struct {
	Kind      Kind         `json:"kind"`
	ID        int64        `json:"id"`
	Record    *core.Record `json:"record,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// Added builds a record.added event.
func Added(r core.Record, at time.Time) Event {
	return Event{Kind: RecordAdded, ID: r.ID, Record: &r, Timestamp: at}
}

// Removed builds a record.removed event.
func Removed(id int64, at time.Time) Event {
	return Event{Kind: RecordRemoved, ID: id, Timestamp: at}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON decodes an event produced by ToJSON.
func FromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	if e.Kind != RecordAdded && e.Kind != RecordRemoved {
		return Event{}, errors.New("unknown event kind: " + string(e.Kind))
	}
	return e, nil
}

// Publisher sends events to a broker.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
