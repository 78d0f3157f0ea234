package purchase

import (
	"context"

	"github.com/shopspring/decimal"

	"EcoFinds/internal/cart"
	"EcoFinds/internal/catalog"
	"EcoFinds/internal/notify"
)

// Checkout orchestrates the purchase flow across the three stores. The
// stores themselves stay independent; this is the only place that touches
// more than one of them in sequence.
type Checkout struct {
	Purchases *Store
	Cart      *cart.Store
	Catalog   *catalog.Store
	Notify    notify.Notifier
}

// Run resolves every cart line first, then records one purchase per resolved
// line at the current price times quantity, then clears the cart. Lines
// whose product was deleted are skipped, not an error. There is still no
// rollback across stores: a persistence failure mid-way leaves the already
// recorded purchases in place.
func (c *Checkout) Run(ctx context.Context, userID string) ([]Purchase, error) {
	lines, err := c.Cart.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}

	type resolved struct {
		productID string
		price     decimal.Decimal
	}

	items := make([]resolved, 0, len(lines))
	for _, l := range lines {
		p, found := c.Catalog.GetByID(l.ProductID)
		if !found {
			continue
		}
		items = append(items, resolved{
			productID: l.ProductID,
			price:     p.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
	}

	out := make([]Purchase, 0, len(items))
	for _, it := range items {
		p, err := c.Purchases.Record(ctx, userID, it.productID, it.price)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}

	if err := c.Cart.Clear(ctx, userID); err != nil {
		return out, err
	}

	if c.Notify != nil && len(out) > 0 {
		c.Notify.Notify("Purchase complete", "Your purchase has been successfully completed.", notify.SeverityInfo)
	}
	return out, nil
}
