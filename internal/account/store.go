package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"EcoFinds/internal/kv"
)

const storageKey = "ecofinds-users"

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("account not found")
)

type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Hash      []byte    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
}

// Store owns the registered account list. Like the other stores it keeps the
// full list in memory and rewrites it wholesale on every mutation.
type Store struct {
	kv kv.Store

	mu      sync.RWMutex
	records []Account
	byEmail map[string]int
	byID    map[string]int
}

func NewStore(ctx context.Context, store kv.Store) (*Store, error) {
	s := &Store{kv: store}

	raw, found, err := store.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	var records []Account
	if found {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode accounts: %w", err)
		}
	} else {
		records, err = seedAccounts()
		if err != nil {
			return nil, fmt.Errorf("seed accounts: %w", err)
		}
		if err := s.persist(ctx, records); err != nil {
			return nil, fmt.Errorf("seed accounts: %w", err)
		}
	}

	s.publish(records)
	return s, nil
}

func (s *Store) Create(ctx context.Context, username, email, password string) (Account, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return Account{}, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	a := Account{
		ID:        "u_" + uuid.NewString(),
		Username:  username,
		Email:     email,
		Hash:      hash,
		CreatedAt: time.Now().UTC(),
	}

	next := make([]Account, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, a)

	if err := s.persist(ctx, next); err != nil {
		return Account{}, err
	}
	s.publish(next)

	return a, nil
}

// Profile carries the fields an account owner may change about themselves.
// Nil pointers are left untouched; the identifier, the hash and the creation
// timestamp never change through here.
type Profile struct {
	Username *string
	Email    *string
}

// Update rewrites the account's profile fields. Moving to an email another
// account already holds is rejected; keeping one's own email is fine.
func (s *Store) Update(ctx context.Context, id string, p Profile) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}

	next := make([]Account, len(s.records))
	copy(next, s.records)
	a := next[i]

	if p.Username != nil {
		a.Username = strings.TrimSpace(*p.Username)
	}
	if p.Email != nil {
		email := normalizeEmail(*p.Email)
		if j, taken := s.byEmail[email]; taken && j != i {
			return Account{}, ErrEmailExists
		}
		a.Email = email
	}
	next[i] = a

	if err := s.persist(ctx, next); err != nil {
		return Account{}, err
	}
	s.publish(next)

	return a, nil
}

func (s *Store) Verify(email, password string) (Account, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	i, ok := s.byEmail[email]
	var a Account
	if ok {
		a = s.records[i]
	}
	s.mu.RUnlock()

	if !ok {
		return Account{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(a.Hash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	return a, nil
}

func (s *Store) Get(id string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Account{}, false
	}
	return s.records[i], true
}

func (s *Store) publish(records []Account) {
	byEmail := make(map[string]int, len(records))
	byID := make(map[string]int, len(records))
	for i, a := range records {
		byEmail[a.Email] = i
		byID[a.ID] = i
	}
	s.records = records
	s.byEmail = byEmail
	s.byID = byID
}

func (s *Store) persist(ctx context.Context, records []Account) error {
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storageKey, b)
}

// seedAccounts builds the demo account available on a fresh install.
// ID "1" matches the seeded listings and purchase history.
func seedAccounts() ([]Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return []Account{{
		ID:        "1",
		Username:  "johndoe",
		Email:     "john@example.com",
		Hash:      hash,
		CreatedAt: time.Now().UTC().AddDate(-2, 0, 0),
	}}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
