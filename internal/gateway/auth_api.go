// internal/gateway/auth_api.go
package gateway

import (
	"context"
	"net/http"

	"github.com/focusdeck/focusdeck/internal/models"
)

type RegisterRequest struct {
	User     models.User `json:"user"`
	Password string      `json:"password"`
	Code     string      `json:"code"`
}

type RegisterResponse struct {
	UserID int    `json:"userId"`
	Token  string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID int    `json:"userId"`
	Token  string `json:"token"`
}

type ChangePasswordRequest struct {
	UserID      int    `json:"userId"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Grade     string `json:"grade"`
	Birth     string `json:"birth"`
	StuID     string `json:"stuId"`
	School    string `json:"school"`
	AvatarURI string `json:"avatarUri,omitempty"`
}

// SendCode asks the backend to mail a verification code to the address.
func (c *Client) SendCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/auth/getCaptcha", nil, body, nil)
}

// Register verifies the emailed code and creates the account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verifyCode", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/user/changePassword", nil, req, nil)
}
