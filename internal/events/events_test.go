package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakei/internal/core"
)

func TestAddedEventJSON(t *testing.T) {
	at := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	e := Added(core.Record{ID: 5, Date: core.NewDate(2024, 1, 10), Category: "food", Amount: 300}, at)

	b, err := e.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind":"record.added","id":5,"timestamp":"2024-01-10T12:00:00Z",
		"record":{"id":5,"date":"2024-01-10","category":"food","amount":300,"memo":""}
	}`, string(b))

	back, err := FromJSON(b)
	require.NoError(t, err)
	assert.Equal(t, RecordAdded, back.Kind)
	require.NotNil(t, back.Record)
	assert.Equal(t, int64(300), back.Record.Amount)
}

func TestRemovedEventOmitsRecord(t *testing.T) {
	b, err := Removed(9, time.Unix(0, 0).UTC()).ToJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"record"`)
}

func TestFromJSONRejectsUnknownKind(t *testing.T) {
	_, err := FromJSON([]byte(`{"kind":"record.updated","id":1}`))
	assert.Error(t, err)
	_, err = FromJSON([]byte(`not json`))
	assert.Error(t, err)
}

type recorder struct {
	got []Event
	err error
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.got = append(r.got, e)
	return r.err
}

func TestFanout(t *testing.T) {
	ok := &recorder{}
	bad := &recorder{err: errors.New("broker down")}
	err := Fanout{ok, bad}.Publish(context.Background(), Removed(1, time.Now()))

	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, ok.got, 1)
	assert.Len(t, bad.got, 1)
	assert.NoError(t, Fanout{}.Publish(context.Background(), Removed(1, time.Now())))
}
