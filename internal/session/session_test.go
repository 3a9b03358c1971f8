// internal/session/session_test.go
package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focusdeck/focusdeck/internal/store"
)

func testStore(t *testing.T) (*Store, *store.SessionRepository) {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	repo := store.NewSessionRepository(db)
	return NewStore(repo), repo
}

func token(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return signed
}

func TestLoadEmptyStore(t *testing.T) {
	s, _ := testStore(t)
	require.NoError(t, s.Load(context.Background()))

	assert.Empty(t, s.Token())
	_, ok := s.UserID()
	assert.False(t, ok)
}

func TestEstablishAndLoad(t *testing.T) {
	s, repo := testStore(t)
	ctx := context.Background()
	tok := token(t, time.Now().Add(time.Hour))

	require.NoError(t, s.Establish(ctx, tok, 42))
	require.NoError(t, s.UpdateContact(ctx, "+8613900000000", "student@example.com"))

	// a fresh store over the same repo sees the persisted session
	reloaded := NewStore(repo)
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, tok, reloaded.Token())
	userID, ok := reloaded.UserID()
	require.True(t, ok)
	assert.Equal(t, 42, userID)
	phone, email := reloaded.Contact()
	assert.Equal(t, "+8613900000000", phone)
	assert.Equal(t, "student@example.com", email)
}

func TestLoadClearsExpiredToken(t *testing.T) {
	s, repo := testStore(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &store.Session{Token: token(t, time.Now().Add(-time.Hour)), UserID: 42}))

	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.Token())
	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, store.ErrNoSession, "expired session is wiped from disk")
}

func TestEstablishCarriesContactForSameUser(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Establish(ctx, token(t, time.Now().Add(time.Hour)), 42))
	require.NoError(t, s.UpdateContact(ctx, "+8613900000000", "student@example.com"))

	// same user logs in again: contact fields survive
	require.NoError(t, s.Establish(ctx, token(t, time.Now().Add(2*time.Hour)), 42))
	phone, email := s.Contact()
	assert.Equal(t, "+8613900000000", phone)
	assert.Equal(t, "student@example.com", email)

	// a different user does not inherit them
	require.NoError(t, s.Establish(ctx, token(t, time.Now().Add(2*time.Hour)), 43))
	phone, email = s.Contact()
	assert.Empty(t, phone)
	assert.Empty(t, email)
}

func TestClear(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Establish(ctx, token(t, time.Now().Add(time.Hour)), 42))
	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Token())
	_, ok := s.UserID()
	assert.False(t, ok)
}

func TestUpdateContactRequiresLogin(t *testing.T) {
	s, _ := testStore(t)
	err := s.UpdateContact(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
