package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakei/internal/core"
	"kakei/internal/store/memory"
)

type failingSlot struct{ err error }

func (f failingSlot) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingSlot) Set(context.Context, string, []byte) error         { return f.err }

func newTestStore(t *testing.T) (*RecordStore, *memory.Slots) {
	t.Helper()
	slots := memory.New()
	return New(slots, ""), slots
}

func TestLoadAllEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	records, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, DefaultKey, s.Key())
}

func TestAddThenLoadAll(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	first := core.Record{ID: 1, Date: core.NewDate(2024, 1, 9), Category: "rent", Amount: 50000, Memo: "January"}
	require.NoError(t, s.Add(ctx, first))
	before, err := s.LoadAll(ctx)
	require.NoError(t, err)

	second := core.Record{ID: 2, Date: core.NewDate(2024, 1, 10), Category: "food", Amount: 1200}
	require.NoError(t, s.Add(ctx, second))

	after, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, before, after[:len(before)])
	assert.Equal(t, second, after[len(after)-1])
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	recs := []core.Record{
		{ID: 1, Date: core.NewDate(2024, 1, 1), Category: "food", Amount: 1},
		{ID: 2, Date: core.NewDate(2024, 1, 2), Category: "rent", Amount: 2},
		{ID: 3, Date: core.NewDate(2024, 1, 3), Category: "other", Amount: 3},
	}
	require.NoError(t, s.SaveAll(ctx, recs))

	removed, err := s.Remove(ctx, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	left, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Record{recs[0], recs[2]}, left)

	removed, err = s.Remove(ctx, 42)
	require.NoError(t, err)
	assert.False(t, removed)

	unchanged, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, left, unchanged)
}

func TestSaveAllOverwrites(t *testing.T) {
	ctx := context.Background()
	s, slots := newTestStore(t)
	require.NoError(t, s.Add(ctx, core.Record{ID: 1, Date: core.NewDate(2024, 1, 1), Category: "food", Amount: 1}))
	require.NoError(t, s.SaveAll(ctx, nil))

	raw, ok, err := slots.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestLoadAllCorruptSlotFailsFast(t *testing.T) {
	ctx := context.Background()
	s, slots := newTestStore(t)
	require.NoError(t, slots.Set(ctx, DefaultKey, []byte(`{"not":"a list"}`)))

	_, err := s.LoadAll(ctx)
	require.ErrorIs(t, err, ErrCorruptSlot)

	err = s.Add(ctx, core.Record{ID: 1})
	require.ErrorIs(t, err, ErrCorruptSlot)

	raw, _, _ := slots.Get(ctx, DefaultKey)
	assert.Equal(t, `{"not":"a list"}`, string(raw), "corrupt slot must not be repaired")
}

func TestSlotErrorsPropagate(t *testing.T) {
	boom := errors.New("disk on fire")
	s := New(failingSlot{err: boom}, "k")

	_, err := s.LoadAll(context.Background())
	require.ErrorIs(t, err, boom)

	err = s.SaveAll(context.Background(), nil)
	require.ErrorIs(t, err, boom)
}

func TestAddNewAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	at := time.UnixMilli(1704844800000)

	a, err := s.AddNew(ctx, core.Record{Date: core.NewDate(2024, 1, 10), Category: "food", Amount: 1}, at)
	require.NoError(t, err)
	b, err := s.AddNew(ctx, core.Record{Date: core.NewDate(2024, 1, 10), Category: "food", Amount: 2}, at)
	require.NoError(t, err)

	assert.Equal(t, int64(1704844800000), a.ID)
	assert.Equal(t, a.ID+1, b.ID)

	records, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestNextID(t *testing.T) {
	now := time.UnixMilli(1000)
	assert.Equal(t, int64(1000), NextID(nil, now))
	assert.Equal(t, int64(1000), NextID([]core.Record{{ID: 999}}, now))
	assert.Equal(t, int64(2001), NextID([]core.Record{{ID: 5}, {ID: 2000}}, now))
}
