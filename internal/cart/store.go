package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"EcoFinds/internal/kv"
	"EcoFinds/internal/notify"
)

const storageKeyPrefix = "ecofinds-cart-"

// Line is one (product, quantity) pairing. Quantity is always >= 1; setting
// it to zero or below removes the line instead.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Store owns one cart per account. Each cart persists under its own key and
// is loaded on first touch; every mutation rewrites the owner's full line
// list before returning.
type Store struct {
	kv     kv.Store
	notify notify.Notifier

	mu    sync.Mutex
	carts map[string][]Line
}

func NewStore(store kv.Store, n notify.Notifier) *Store {
	if n == nil {
		n = notify.Nop{}
	}
	return &Store{
		kv:     store,
		notify: n,
		carts:  make(map[string][]Line),
	}
}

// Add inserts a line with quantity 1, or bumps the quantity when the product
// is already in the cart. At most one line per product ever exists.
func (s *Store) Add(ctx context.Context, owner, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, owner)
	if err != nil {
		return err
	}

	next := make([]Line, len(lines))
	copy(next, lines)

	bumped := false
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity++
			bumped = true
			break
		}
	}
	if !bumped {
		next = append(next, Line{ProductID: productID, Quantity: 1})
	}

	if err := s.persistLocked(ctx, owner, next); err != nil {
		return err
	}
	s.carts[owner] = next

	s.notify.Notify("Added to cart", "Item has been added to your cart.", notify.SeverityInfo)
	return nil
}

func (s *Store) Remove(ctx context.Context, owner, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.removeLocked(ctx, owner, productID); err != nil {
		return err
	}

	s.notify.Notify("Removed from cart", "Item has been removed from your cart.", notify.SeverityInfo)
	return nil
}

// SetQuantity overwrites a line's quantity. A quantity of zero or below is
// equivalent to Remove. Unknown products are a no-op.
func (s *Store) SetQuantity(ctx context.Context, owner, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, owner, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, owner)
	if err != nil {
		return err
	}

	next := make([]Line, len(lines))
	copy(next, lines)

	changed := false
	for i := range next {
		if next[i].ProductID == productID {
			next[i].Quantity = quantity
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	if err := s.persistLocked(ctx, owner, next); err != nil {
		return err
	}
	s.carts[owner] = next
	return nil
}

func (s *Store) Clear(ctx context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := []Line{}
	if err := s.persistLocked(ctx, owner, next); err != nil {
		return err
	}
	s.carts[owner] = next

	s.notify.Notify("Cart cleared", "All items have been removed from your cart.", notify.SeverityInfo)
	return nil
}

func (s *Store) Lines(ctx context.Context, owner string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.loadLocked(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]Line, len(lines))
	copy(out, lines)
	return out, nil
}

// Total sums quantity times current price over all lines. Lines whose
// product no longer resolves contribute zero; a deleted product is never an
// error here.
func (s *Store) Total(ctx context.Context, owner string, resolve func(productID string) (decimal.Decimal, bool)) (decimal.Decimal, error) {
	lines, err := s.Lines(ctx, owner)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, l := range lines {
		price, ok := resolve(l.ProductID)
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total, nil
}

// ItemCount is the sum of quantities across all lines, dangling or not.
func (s *Store) ItemCount(ctx context.Context, owner string) (int, error) {
	lines, err := s.Lines(ctx, owner)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n, nil
}

func (s *Store) removeLocked(ctx context.Context, owner, productID string) error {
	lines, err := s.loadLocked(ctx, owner)
	if err != nil {
		return err
	}

	next := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != productID {
			next = append(next, l)
		}
	}

	if err := s.persistLocked(ctx, owner, next); err != nil {
		return err
	}
	s.carts[owner] = next
	return nil
}

func (s *Store) loadLocked(ctx context.Context, owner string) ([]Line, error) {
	if lines, ok := s.carts[owner]; ok {
		return lines, nil
	}

	raw, found, err := s.kv.Get(ctx, storageKeyPrefix+owner)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var lines []Line
	if found {
		if err := json.Unmarshal(raw, &lines); err != nil {
			return nil, fmt.Errorf("decode cart: %w", err)
		}
	}

	s.carts[owner] = lines
	return lines, nil
}

func (s *Store) persistLocked(ctx context.Context, owner string, lines []Line) error {
	b, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKeyPrefix+owner, b)
}
