// internal/planner/user_service.go
package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/focusdeck/focusdeck/internal/gateway"
	"github.com/focusdeck/focusdeck/internal/models"
	"github.com/focusdeck/focusdeck/internal/session"
	"github.com/focusdeck/focusdeck/pkg/auth"
)

var (
	ErrPasswordMismatch  = errors.New("password confirmation does not match")
	ErrPasswordUnchanged = errors.New("new password must differ from the old one")
)

// AuthGateway is the account-facing slice of the REST client.
type AuthGateway interface {
	SendCode(ctx context.Context, email string) error
	Register(ctx context.Context, req gateway.RegisterRequest) (*gateway.RegisterResponse, error)
	Login(ctx context.Context, email, password string) (*gateway.LoginResponse, error)
	ChangePassword(ctx context.Context, req gateway.ChangePasswordRequest) error
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, req gateway.UpdateProfileRequest) error
}

// UserService handles account operations: registration, login, profile
// and password management. Local validation runs before every remote
// call; a validation failure issues no call at all.
type UserService struct {
	gw      AuthGateway
	session *session.Store
	policy  *auth.PasswordPolicy

	mu      sync.RWMutex
	profile *models.User
}

func NewUserService(gw AuthGateway, sess *session.Store) *UserService {
	return &UserService{
		gw:      gw,
		session: sess,
		policy:  auth.NewPasswordPolicy(),
	}
}

// SendCode requests an email verification code for registration.
func (s *UserService) SendCode(ctx context.Context, email string) error {
	if err := auth.ValidateEmail(email); err != nil {
		return err
	}
	return s.gw.SendCode(ctx, email)
}

// Register verifies the emailed code, creates the account and opens a
// session for it.
func (s *UserService) Register(ctx context.Context, user models.User, password, confirm, code string) error {
	if err := auth.ValidateEmail(user.Email); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if err := s.policy.ValidatePassword(password); err != nil {
		return err
	}

	resp, err := s.gw.Register(ctx, gateway.RegisterRequest{User: user, Password: password, Code: code})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err := s.session.Establish(ctx, resp.Token, resp.UserID); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	return s.refreshProfile(ctx)
}

// Login authenticates and opens a session, then loads the profile so
// the reminder contact fields are fresh.
func (s *UserService) Login(ctx context.Context, email, password string) error {
	if err := auth.ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return errors.New("password is required")
	}

	resp, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := s.session.Establish(ctx, resp.Token, resp.UserID); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	return s.refreshProfile(ctx)
}

// ChangePassword rotates the account password.
func (s *UserService) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) error {
	userID, ok := s.session.UserID()
	if !ok {
		return ErrNoUser
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if newPassword == oldPassword {
		return ErrPasswordUnchanged
	}
	if err := s.policy.ValidatePassword(newPassword); err != nil {
		return err
	}

	req := gateway.ChangePasswordRequest{
		UserID:      userID,
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}
	if err := s.gw.ChangePassword(ctx, req); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// UpdateProfile pushes profile edits and refreshes the stored contact
// fields used at alarm-fire time.
func (s *UserService) UpdateProfile(ctx context.Context, req gateway.UpdateProfileRequest) error {
	userID, ok := s.session.UserID()
	if !ok {
		return ErrNoUser
	}
	req.UserID = userID
	if err := auth.ValidateEmail(req.Email); err != nil {
		return err
	}

	if err := s.gw.UpdateProfile(ctx, req); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return s.refreshProfile(ctx)
}

// Logout clears the session and the cached profile.
func (s *UserService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()
	return nil
}

// Profile returns the cached profile, nil when none is loaded.
func (s *UserService) Profile() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	cp := *s.profile
	return &cp
}

// refreshProfile reloads the profile and mirrors phone/email into the
// session store for the reminder dispatcher.
func (s *UserService) refreshProfile(ctx context.Context) error {
	profile, err := s.gw.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	if err := s.session.UpdateContact(ctx, profile.Phone, profile.Email); err != nil {
		return fmt.Errorf("store contact fields: %w", err)
	}
	return nil
}
