package kv_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"EcoFinds/internal/kv"
)

func stores(t *testing.T) map[string]kv.Store {
	t.Helper()

	file, err := kv.NewFileKV(t.TempDir())
	require.NoError(t, err)

	return map[string]kv.Store{
		"memory": kv.NewMemKV(),
		"file":   file,
	}
}

func TestKV_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := s.Get(ctx, "ecofinds-products")
			require.NoError(t, err)
			require.False(t, found)

			want := []byte(`[{"id":"1"}]`)
			require.NoError(t, s.Set(ctx, "ecofinds-products", want))

			got, found, err := s.Get(ctx, "ecofinds-products")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, want, got)
		})
	}
}

func TestKV_Overwrite(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "k", []byte("old")))
			require.NoError(t, s.Set(ctx, "k", []byte("new")))

			got, found, err := s.Get(ctx, "k")
			require.NoError(t, err)
			require.True(t, found)
			require.Equal(t, []byte("new"), got)
		})
	}
}

func TestKV_Delete(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "k", []byte("v")))
			require.NoError(t, s.Delete(ctx, "k"))

			_, found, err := s.Get(ctx, "k")
			require.NoError(t, err)
			require.False(t, found)

			// Deleting an absent key is a no-op.
			require.NoError(t, s.Delete(ctx, "k"))
		})
	}
}

func TestKV_Ping(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Ping(ctx))
		})
	}
}
