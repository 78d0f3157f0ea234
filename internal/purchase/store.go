package purchase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"EcoFinds/internal/kv"
	"EcoFinds/internal/notify"
)

const storageKey = "ecofinds-purchases"

// Purchase is an immutable record of one completed checkout line. Price is
// what was actually paid at checkout time; it does not track the listing's
// later price changes, and the product reference may go dangling if the
// listing is deleted.
type Purchase struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ProductID   string          `json:"product_id"`
	PurchasedAt time.Time       `json:"purchased_at"`
	Price       decimal.Decimal `json:"price"`
}

type Store struct {
	kv     kv.Store
	notify notify.Notifier

	mu      sync.RWMutex
	records []Purchase
	byUser  map[string][]int
}

func NewStore(ctx context.Context, store kv.Store, n notify.Notifier) (*Store, error) {
	if n == nil {
		n = notify.Nop{}
	}
	s := &Store{kv: store, notify: n}

	raw, found, err := store.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}

	var records []Purchase
	if found {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode purchases: %w", err)
		}
	} else {
		records = seedPurchases()
		if err := s.persist(ctx, records); err != nil {
			return nil, fmt.Errorf("seed purchases: %w", err)
		}
	}

	s.publish(records)
	return s, nil
}

// Record appends an immutable purchase. The price is the caller-supplied
// amount paid, never re-derived from the catalog.
func (s *Store) Record(ctx context.Context, userID, productID string, price decimal.Decimal) (Purchase, error) {
	p := Purchase{
		ID:          ulid.Make().String(),
		UserID:      userID,
		ProductID:   productID,
		PurchasedAt: time.Now().UTC(),
		Price:       price,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Purchase, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, p)

	if err := s.persist(ctx, next); err != nil {
		return Purchase{}, err
	}
	s.publish(next)

	return p, nil
}

// ListByUser returns a user's purchases in insertion order. Callers sort for
// display; the store itself promises no particular ordering.
func (s *Store) ListByUser(userID string) []Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.byUser[userID]
	out := make([]Purchase, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.records[i])
	}
	return out
}

func (s *Store) publish(records []Purchase) {
	byUser := make(map[string][]int)
	for i, p := range records {
		byUser[p.UserID] = append(byUser[p.UserID], i)
	}
	s.records = records
	s.byUser = byUser
}

func (s *Store) persist(ctx context.Context, records []Purchase) error {
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKey, b)
}

// seedPurchases matches the seeded catalog and demo account: user "1" bought
// the record player and the wooden chair.
func seedPurchases() []Purchase {
	now := time.Now().UTC()

	return []Purchase{
		{
			ID:          "1",
			UserID:      "1",
			ProductID:   "3",
			PurchasedAt: now.AddDate(0, 0, -5),
			Price:       decimal.RequireFromString("120.00"),
		},
		{
			ID:          "2",
			UserID:      "1",
			ProductID:   "5",
			PurchasedAt: now.AddDate(0, 0, -15),
			Price:       decimal.RequireFromString("75.00"),
		},
	}
}
