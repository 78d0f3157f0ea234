package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"EcoFinds/internal/cart"
	"EcoFinds/internal/kv"
	"EcoFinds/internal/notify"
)

const owner = "u_test"

func resolver(prices map[string]string) func(string) (decimal.Decimal, bool) {
	return func(productID string) (decimal.Decimal, bool) {
		p, ok := prices[productID]
		if !ok {
			return decimal.Zero, false
		}
		return decimal.RequireFromString(p), true
	}
}

func TestAdd_OneLinePerProduct(t *testing.T) {
	s := cart.NewStore(kv.NewMemKV(), notify.Nop{})
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, owner, "p1"))
	require.NoError(t, s.Add(ctx, owner, "p1"))
	require.NoError(t, s.Add(ctx, owner, "p2"))
	require.NoError(t, s.Add(ctx, owner, "p1"))

	// Item count equals the number of Add calls.
	count, err := s.ItemCount(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 4, count)

	lines, err := s.Lines(ctx, owner)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, cart.Line{ProductID: "p1", Quantity: 3}, lines[0])
	require.Equal(t, cart.Line{ProductID: "p2", Quantity: 1}, lines[1])
}

func TestSetQuantity_Overwrites(t *testing.T) {
	s := cart.NewStore(kv.NewMemKV(), notify.Nop{})
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, owner, "p1"))
	require.NoError(t, s.SetQuantity(ctx, owner, "p1", 5))

	count, err := s.ItemCount(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	s := cart.NewStore(kv.NewMemKV(), notify.Nop{})
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, owner, "p1"))
	require.NoError(t, s.SetQuantity(ctx, owner, "p1", 0))

	lines, err := s.Lines(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, lines)

	require.NoError(t, s.Add(ctx, owner, "p1"))
	require.NoError(t, s.SetQuantity(ctx, owner, "p1", -3))

	lines, err = s.Lines(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestSetQuantity_UnknownProductIsNoop(t *testing.T) {
	s := cart.NewStore(kv.NewMemKV(), notify.Nop{})
	ctx := context.Background()

	require.NoError(t, s.SetQuantity(ctx, owner, "ghost", 3))

	lines, err := s.Lines(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestRemoveAndClear(t *testing.T) {
	s := cart.NewStore(kv.NewMemKV(), notify.Nop{})
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, owner, "p1"))
	require.NoError(t, s.Add(ctx, owner, "p2"))

	require.NoError(t, s.Remove(ctx, owner, "p1"))
	lines, err := s.Lines(ctx, owner)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "p2", lines[0].ProductID)

	require.NoError(t, s.Clear(ctx, owner))
	lines, err = s.Lines(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestTotal_AddTwiceThenRemove(t *testing.T) {
	s := cart.NewStore(kv.NewMemKV(), notify.Nop{})
	ctx := context.Background()
	prices := resolver(map[string]string{"P": "100.00"})

	require.NoError(t, s.Add(ctx, owner, "P"))
	total, err := s.Total(ctx, owner, prices)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("100.00")))

	require.NoError(t, s.Add(ctx, owner, "P"))
	total, err = s.Total(ctx, owner, prices)
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("200.00")))

	require.NoError(t, s.Remove(ctx, owner, "P"))
	total, err = s.Total(ctx, owner, prices)
	require.NoError(t, err)
	require.True(t, total.IsZero())
}

func TestTotal_DanglingLineContributesZero(t *testing.T) {
	s := cart.NewStore(kv.NewMemKV(), notify.Nop{})
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, owner, "alive"))
	require.NoError(t, s.Add(ctx, owner, "alive"))
	require.NoError(t, s.Add(ctx, owner, "deleted"))

	total, err := s.Total(ctx, owner, resolver(map[string]string{"alive": "50.00"}))
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.RequireFromString("100.00")))

	// The dangling line still counts as an item until it is removed.
	count, err := s.ItemCount(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestCartsAreScopedPerOwner(t *testing.T) {
	s := cart.NewStore(kv.NewMemKV(), notify.Nop{})
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "alice", "p1"))
	require.NoError(t, s.Add(ctx, "bob", "p2"))

	lines, err := s.Lines(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "p1", lines[0].ProductID)
}

func TestPersistence_RoundTrip(t *testing.T) {
	mem := kv.NewMemKV()
	ctx := context.Background()

	s := cart.NewStore(mem, notify.Nop{})
	require.NoError(t, s.Add(ctx, owner, "p1"))
	require.NoError(t, s.Add(ctx, owner, "p1"))
	require.NoError(t, s.Add(ctx, owner, "p2"))

	want, err := s.Lines(ctx, owner)
	require.NoError(t, err)

	reloaded := cart.NewStore(mem, notify.Nop{})
	got, err := reloaded.Lines(ctx, owner)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
