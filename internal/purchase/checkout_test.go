package purchase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"EcoFinds/internal/cart"
	"EcoFinds/internal/catalog"
	"EcoFinds/internal/kv"
	"EcoFinds/internal/notify"
	"EcoFinds/internal/purchase"
)

func newCheckout(t *testing.T) (*purchase.Checkout, *catalog.Store) {
	t.Helper()

	mem := kv.NewMemKV()
	ctx := context.Background()

	products, err := catalog.NewStore(ctx, mem, notify.Nop{})
	require.NoError(t, err)

	purchases, err := purchase.NewStore(ctx, mem, notify.Nop{})
	require.NoError(t, err)

	return &purchase.Checkout{
		Purchases: purchases,
		Cart:      cart.NewStore(mem, notify.Nop{}),
		Catalog:   products,
	}, products
}

func listProduct(t *testing.T, products *catalog.Store, title, price string) catalog.Product {
	t.Helper()

	p, err := products.Add(context.Background(), catalog.Input{
		Title:    title,
		Category: "Electronics",
		Price:    decimal.RequireFromString(price),
		SellerID: "seller-x",
	})
	require.NoError(t, err)
	return p
}

func TestCheckout_RecordsEachLineThenClearsCart(t *testing.T) {
	c, products := newCheckout(t)
	ctx := context.Background()

	p1 := listProduct(t, products, "Camera", "50.00")
	p2 := listProduct(t, products, "Tripod", "30.00")

	require.NoError(t, c.Cart.Add(ctx, "u_9", p1.ID))
	require.NoError(t, c.Cart.Add(ctx, "u_9", p1.ID))
	require.NoError(t, c.Cart.Add(ctx, "u_9", p2.ID))

	created, err := c.Run(ctx, "u_9")
	require.NoError(t, err)
	require.Len(t, created, 2)

	require.Equal(t, p1.ID, created[0].ProductID)
	require.True(t, created[0].Price.Equal(decimal.RequireFromString("100.00")))
	require.Equal(t, p2.ID, created[1].ProductID)
	require.True(t, created[1].Price.Equal(decimal.RequireFromString("30.00")))

	require.Len(t, c.Purchases.ListByUser("u_9"), 2)

	lines, err := c.Cart.Lines(ctx, "u_9")
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestCheckout_SkipsDanglingLines(t *testing.T) {
	c, products := newCheckout(t)
	ctx := context.Background()

	alive := listProduct(t, products, "Camera", "50.00")
	doomed := listProduct(t, products, "Tripod", "30.00")

	require.NoError(t, c.Cart.Add(ctx, "u_9", alive.ID))
	require.NoError(t, c.Cart.Add(ctx, "u_9", doomed.ID))

	require.NoError(t, products.Remove(ctx, doomed.ID))

	created, err := c.Run(ctx, "u_9")
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, alive.ID, created[0].ProductID)

	lines, err := c.Cart.Lines(ctx, "u_9")
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestCheckout_EmptyCart(t *testing.T) {
	c, _ := newCheckout(t)

	created, err := c.Run(context.Background(), "u_9")
	require.NoError(t, err)
	require.Empty(t, created)
	require.Empty(t, c.Purchases.ListByUser("u_9"))
}

func TestCheckout_PricePaidIsDecoupledFromLaterPriceChanges(t *testing.T) {
	c, products := newCheckout(t)
	ctx := context.Background()

	p := listProduct(t, products, "Camera", "50.00")
	require.NoError(t, c.Cart.Add(ctx, "u_9", p.ID))

	created, err := c.Run(ctx, "u_9")
	require.NoError(t, err)
	require.Len(t, created, 1)

	newPrice := decimal.RequireFromString("80.00")
	require.NoError(t, products.Update(ctx, p.ID, catalog.Patch{Price: &newPrice}))

	history := c.Purchases.ListByUser("u_9")
	require.Len(t, history, 1)
	require.True(t, history[0].Price.Equal(decimal.RequireFromString("50.00")))
}
