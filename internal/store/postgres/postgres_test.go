package postgres

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	if os.Getenv("TEST_POSTGRES_HOST") == "" {
		t.Skip("TEST_POSTGRES_HOST not set, skipping integration test")
	}
	port, _ := strconv.Atoi(os.Getenv("TEST_POSTGRES_PORT"))
	return Config{
		Host:     os.Getenv("TEST_POSTGRES_HOST"),
		Port:     port,
		Database: os.Getenv("TEST_POSTGRES_DB"),
		User:     os.Getenv("TEST_POSTGRES_USER"),
		Password: os.Getenv("TEST_POSTGRES_PASSWORD"),
	}
}

// TestNew_ConnectionFailure checks that an unreachable host is reported.
func TestNew_ConnectionFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("dials the network")
	}
	cfg := Config{
		Host:     "nonexistent-host.invalid",
		Database: "kakei",
		User:     "kakei",
		Password: "password",
	}

	_, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(os.Stdout, nil)))
	assert.Error(t, err)
}

func TestSlotsGetSet(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, testConfig(t), nil)
	require.NoError(t, err)
	defer s.Close()

	key := "test-" + strconv.FormatInt(int64(os.Getpid()), 10)
	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, key, []byte(`[]`)))
	require.NoError(t, s.Set(ctx, key, []byte(`[{"id": 1}]`)))

	got, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":1}]`, string(got))
}
