package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakei/internal/core"
	"kakei/internal/store"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "kakei.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteRepositoryGetSet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, ok, err := repo.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "expenses", []byte(`[]`)))
	require.NoError(t, repo.Set(ctx, "expenses", []byte(`[{"id":1}]`)))

	got, ok, err := repo.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, string(got))
}

func TestSQLiteRepositoryReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kakei.db")

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, "expenses", []byte(`[]`)))
	require.NoError(t, repo.Close())

	// migrations are idempotent and data survives
	repo, err = NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()
	got, ok, err := repo.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(got))
}

func TestRecordStoreOnSQLite(t *testing.T) {
	ctx := context.Background()
	s := store.New(newTestRepository(t), "")

	rec := core.Record{ID: 7, Date: core.NewDate(2024, 1, 10), Category: "food", Amount: 1200}
	require.NoError(t, s.Add(ctx, rec))

	records, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.Record{rec}, records)

	removed, err := s.Remove(ctx, 7)
	require.NoError(t, err)
	assert.True(t, removed)

	records, err = s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
