package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"EcoFinds/internal/kv"
	"EcoFinds/internal/notify"
)

const storageKey = "ecofinds-products"

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidPrice = errors.New("price must be non-negative")
)

// Store owns the product listings. State is replaced wholesale on every
// mutation: a new record list is derived, persisted, then published together
// with freshly rebuilt lookup indexes. Readers never observe a half-applied
// change.
type Store struct {
	kv     kv.Store
	notify notify.Notifier

	mu         sync.RWMutex
	records    []Product
	byID       map[string]int
	bySeller   map[string][]int
	byCategory map[string][]int
	featured   []int
}

// NewStore loads the catalog from persistence, or seeds it with the sample
// listings on first use.
func NewStore(ctx context.Context, store kv.Store, n notify.Notifier) (*Store, error) {
	if n == nil {
		n = notify.Nop{}
	}
	s := &Store{kv: store, notify: n}

	raw, found, err := store.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var records []Product
	if found {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	} else {
		records = seedProducts()
		if err := s.persist(ctx, records); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	s.publish(records)
	return s, nil
}

// Input is what a seller submits; the identifier and creation timestamp are
// assigned by the store.
type Input struct {
	Title          string
	Description    string
	Category       string
	SubCategory    string
	Price          decimal.Decimal
	Image          string
	Specifications []Spec
	Condition      string
	Seller         Seller
	SellerID       string
	Featured       bool
}

// Patch carries the fields an update may change. Nil pointers are left
// untouched; identifier, seller and creation timestamp can never change.
type Patch struct {
	Title          *string
	Description    *string
	Category       *string
	SubCategory    *string
	Price          *decimal.Decimal
	Image          *string
	Specifications []Spec
	Condition      *string
	Featured       *bool
}

func (s *Store) Add(ctx context.Context, in Input) (Product, error) {
	if in.Price.IsNegative() {
		s.notify.Notify("Error", "Price must be a non-negative amount.", notify.SeverityError)
		return Product{}, ErrInvalidPrice
	}

	p := Product{
		ID:             ulid.Make().String(),
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		SubCategory:    in.SubCategory,
		Price:          in.Price,
		Image:          in.Image,
		Specifications: in.Specifications,
		Condition:      in.Condition,
		Seller:         in.Seller,
		SellerID:       in.SellerID,
		CreatedAt:      time.Now().UTC(),
		Featured:       in.Featured,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Product, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, p)

	if err := s.persist(ctx, next); err != nil {
		return Product{}, err
	}
	s.publish(next)

	s.notify.Notify("Product added", "Your product has been successfully listed.", notify.SeverityInfo)
	return p, nil
}

func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	if patch.Price != nil && patch.Price.IsNegative() {
		s.notify.Notify("Error", "Price must be a non-negative amount.", notify.SeverityError)
		return ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		s.notify.Notify("Error", "Product not found", notify.SeverityError)
		return ErrNotFound
	}

	next := make([]Product, len(s.records))
	copy(next, s.records)
	next[i] = merge(next[i], patch)

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.publish(next)

	s.notify.Notify("Product updated", "Your product has been successfully updated.", notify.SeverityInfo)
	return nil
}

// Remove deletes the listing if present. Removing an absent identifier is a
// no-op, not an error. Cart lines and purchase records referring to the
// listing are left dangling; readers filter them out.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return nil
	}

	next := make([]Product, 0, len(s.records)-1)
	for _, p := range s.records {
		if p.ID != id {
			next = append(next, p)
		}
	}

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.publish(next)

	s.notify.Notify("Product deleted", "Your product has been successfully removed.", notify.SeverityInfo)
	return nil
}

func (s *Store) GetByID(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.records[i], true
}

// List returns all listings in insertion order.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) ListBySeller(sellerID string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.bySeller[sellerID])
}

func (s *Store) ListByCategory(category string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.byCategory[category])
}

func (s *Store) ListFeatured() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.featured)
}

func (s *Store) collect(idx []int) []Product {
	out := make([]Product, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.records[i])
	}
	return out
}

// publish swaps in the new record list and rebuilds every lookup index, so
// reads stay O(1) instead of scanning the list. Callers hold s.mu, except
// during construction.
func (s *Store) publish(records []Product) {
	byID := make(map[string]int, len(records))
	bySeller := make(map[string][]int)
	byCategory := make(map[string][]int)
	var featured []int

	for i, p := range records {
		byID[p.ID] = i
		bySeller[p.SellerID] = append(bySeller[p.SellerID], i)
		byCategory[p.Category] = append(byCategory[p.Category], i)
		if p.Featured {
			featured = append(featured, i)
		}
	}

	s.records = records
	s.byID = byID
	s.bySeller = bySeller
	s.byCategory = byCategory
	s.featured = featured
}

func (s *Store) persist(ctx context.Context, records []Product) error {
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKey, b)
}

func merge(p Product, patch Patch) Product {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.SubCategory != nil {
		p.SubCategory = *patch.SubCategory
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Specifications != nil {
		p.Specifications = patch.Specifications
	}
	if patch.Condition != nil {
		p.Condition = *patch.Condition
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	return p
}
