package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"EcoFinds/internal/account"
	"EcoFinds/internal/kv"
)

func newStore(t *testing.T) (*account.Store, *kv.MemKV) {
	t.Helper()

	mem := kv.NewMemKV()
	s, err := account.NewStore(context.Background(), mem)
	require.NoError(t, err)
	return s, mem
}

func TestNewStore_SeedsDemoAccount(t *testing.T) {
	s, _ := newStore(t)

	a, err := s.Verify("john@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "1", a.ID)
	require.Equal(t, "johndoe", a.Username)
}

func TestCreateAndVerify(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	a, err := s.Create(ctx, "janedoe", "Jane@Example.com", "sekret-password")
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
	require.Equal(t, "jane@example.com", a.Email)
	require.False(t, a.CreatedAt.IsZero())

	got, err := s.Verify("jane@example.com", "sekret-password")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)

	_, err = s.Verify("jane@example.com", "wrong")
	require.ErrorIs(t, err, account.ErrInvalidCredentials)

	_, err = s.Verify("nobody@example.com", "sekret-password")
	require.ErrorIs(t, err, account.ErrInvalidCredentials)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "janedoe", "jane@example.com", "sekret-password")
	require.NoError(t, err)

	_, err = s.Create(ctx, "other", "JANE@example.com", "another-password")
	require.ErrorIs(t, err, account.ErrEmailExists)
}

func TestUpdate_EditsProfileFields(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	username := "john_d"
	email := "John.D@Example.com"
	a, err := s.Update(ctx, "1", account.Profile{Username: &username, Email: &email})
	require.NoError(t, err)
	require.Equal(t, "john_d", a.Username)
	require.Equal(t, "john.d@example.com", a.Email)

	// Credentials survive; only the profile moved.
	got, err := s.Verify("john.d@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "1", got.ID)

	_, err = s.Verify("john@example.com", "password123")
	require.ErrorIs(t, err, account.ErrInvalidCredentials)
}

func TestUpdate_NilFieldsLeftUntouched(t *testing.T) {
	s, _ := newStore(t)

	username := "john_d"
	a, err := s.Update(context.Background(), "1", account.Profile{Username: &username})
	require.NoError(t, err)
	require.Equal(t, "john_d", a.Username)
	require.Equal(t, "john@example.com", a.Email)
}

func TestUpdate_RejectsTakenEmail(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	jane, err := s.Create(ctx, "janedoe", "jane@example.com", "sekret-password")
	require.NoError(t, err)

	taken := "John@Example.com"
	_, err = s.Update(ctx, jane.ID, account.Profile{Email: &taken})
	require.ErrorIs(t, err, account.ErrEmailExists)

	// Re-submitting one's own email is not a conflict.
	own := "jane@example.com"
	_, err = s.Update(ctx, jane.ID, account.Profile{Email: &own})
	require.NoError(t, err)
}

func TestUpdate_UnknownAccount(t *testing.T) {
	s, _ := newStore(t)

	username := "ghost"
	_, err := s.Update(context.Background(), "nope", account.Profile{Username: &username})
	require.ErrorIs(t, err, account.ErrNotFound)
}

func TestGet(t *testing.T) {
	s, _ := newStore(t)

	a, ok := s.Get("1")
	require.True(t, ok)
	require.Equal(t, "johndoe", a.Username)

	_, ok = s.Get("nope")
	require.False(t, ok)
}

func TestPersistence_RoundTrip(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "janedoe", "jane@example.com", "sekret-password")
	require.NoError(t, err)

	reloaded, err := account.NewStore(ctx, mem)
	require.NoError(t, err)

	got, err := reloaded.Verify("jane@example.com", "sekret-password")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}
