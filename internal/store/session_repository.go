// internal/store/session_repository.go
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Session is the single persisted auth record: token, user identity, and
// the contact fields the alarm dispatcher reads at fire time.
type Session struct {
	ID        uint `gorm:"primaryKey"`
	Token     string
	UserID    int
	Phone     string
	Email     string
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

// ErrNoSession is returned when no user is logged in.
var ErrNoSession = errors.New("no active session")

// sessionRowID pins the session to one row.
const sessionRowID = 1

// SessionRepository persists the auth session.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Get(ctx context.Context) (*Session, error) {
	var s Session
	err := r.db.WithContext(ctx).First(&s, sessionRowID).Error
	switch {
	case err == nil:
		if s.Token == "" {
			return nil, ErrNoSession
		}
		return &s, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNoSession
	default:
		return nil, fmt.Errorf("load session: %w", err)
	}
}

func (r *SessionRepository) Save(ctx context.Context, s *Session) error {
	s.ID = sessionRowID
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// UpdateContact records the phone/email pair used by reminder delivery.
func (r *SessionRepository) UpdateContact(ctx context.Context, phone, email string) error {
	updates := map[string]interface{}{
		"phone": phone,
		"email": email,
	}
	err := r.db.WithContext(ctx).Model(&Session{}).Where("id = ?", sessionRowID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Clear removes the session on logout.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Delete(&Session{}, sessionRowID).Error; err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
