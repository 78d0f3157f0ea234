package purchase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"EcoFinds/internal/kv"
	"EcoFinds/internal/notify"
	"EcoFinds/internal/purchase"
)

func newStore(t *testing.T) (*purchase.Store, *kv.MemKV) {
	t.Helper()

	mem := kv.NewMemKV()
	s, err := purchase.NewStore(context.Background(), mem, notify.Nop{})
	require.NoError(t, err)
	return s, mem
}

func TestNewStore_SeedsSampleHistory(t *testing.T) {
	s, _ := newStore(t)

	history := s.ListByUser("1")
	require.Len(t, history, 2)
	require.Equal(t, "3", history[0].ProductID)
	require.Equal(t, "5", history[1].ProductID)
}

func TestRecord_AppendsImmutableRecord(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	p, err := s.Record(ctx, "u_7", "prod-1", decimal.RequireFromString("42.50"))
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.False(t, p.PurchasedAt.IsZero())
	require.True(t, p.Price.Equal(decimal.RequireFromString("42.50")))

	history := s.ListByUser("u_7")
	require.Len(t, history, 1)
	require.Equal(t, p.ID, history[0].ID)

	// Unrelated users see nothing.
	require.Empty(t, s.ListByUser("u_other"))
}

func TestPersistence_RoundTrip(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()

	_, err := s.Record(ctx, "u_7", "prod-1", decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	reloaded, err := purchase.NewStore(ctx, mem, notify.Nop{})
	require.NoError(t, err)

	want := s.ListByUser("u_7")
	got := reloaded.ListByUser("u_7")
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].ID, got[i].ID)
		require.Equal(t, want[i].ProductID, got[i].ProductID)
		require.True(t, want[i].Price.Equal(got[i].Price))
		require.True(t, want[i].PurchasedAt.Equal(got[i].PurchasedAt))
	}
}
