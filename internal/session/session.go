// internal/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/focusdeck/focusdeck/internal/store"
	"github.com/focusdeck/focusdeck/pkg/auth"
)

// ErrNotLoggedIn is returned by operations that need an active session.
var ErrNotLoggedIn = errors.New("not logged in")

// Store is the process-wide auth state: the backend token, the current
// user id, and the contact fields reminder delivery reads at fire time.
// It caches the persisted session row and serves reads without touching
// the database.
type Store struct {
	mu        sync.RWMutex
	repo      *store.SessionRepository
	inspector *auth.TokenInspector
	current   *store.Session
}

func NewStore(repo *store.SessionRepository) *Store {
	return &Store{
		repo:      repo,
		inspector: auth.NewTokenInspector(),
	}
}

// Load restores the persisted session at startup. An expired token is
// treated as logged out and cleared.
func (s *Store) Load(ctx context.Context) error {
	sess, err := s.repo.Get(ctx)
	if errors.Is(err, store.ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}

	if !s.inspector.Valid(sess.Token) {
		log.Println("stored session token expired, clearing session")
		if err := s.repo.Clear(ctx); err != nil {
			return fmt.Errorf("clear expired session: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// Establish persists a fresh login.
func (s *Store) Establish(ctx context.Context, token string, userID int) error {
	sess := &store.Session{Token: token, UserID: userID}

	// Carry contact fields over when re-logging the same user in.
	s.mu.RLock()
	if s.current != nil && s.current.UserID == userID {
		sess.Phone = s.current.Phone
		sess.Email = s.current.Email
	}
	s.mu.RUnlock()

	if err := s.repo.Save(ctx, sess); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// UpdateContact records the phone/email pair used for SMS and email
// reminders.
func (s *Store) UpdateContact(ctx context.Context, phone, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNotLoggedIn
	}
	if err := s.repo.UpdateContact(ctx, phone, email); err != nil {
		return err
	}
	s.current.Phone = phone
	s.current.Email = email
	return nil
}

// Clear drops the session on logout.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return nil
}

// Token implements gateway.TokenSource. Returns "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// UserID returns the logged-in user's id.
func (s *Store) UserID() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return 0, false
	}
	return s.current.UserID, true
}

// Contact returns the stored phone and email for reminder delivery.
// Both may be empty.
func (s *Store) Contact() (phone, email string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return "", ""
	}
	return s.current.Phone, s.current.Email
}
