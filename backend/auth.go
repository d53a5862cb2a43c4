package backend

import (
	"context"
	"net/http"
)

// Role is a user role on the admin panel.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// User is the authenticated admin user as reported by the backend.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// TokenPair is the access/refresh token pair issued by login and rotated by
// every refresh. The tokens are opaque to this client; expiry is the
// backend's concern.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// Login authenticates against the backend. A 401 here is a credential
// failure, never an expired-session condition, so the retry flow is
// disabled.
func (c *Client) Login(ctx context.Context, email, password string) (TokenPair, User, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out, WithoutAuthRetry())
	if err != nil {
		return TokenPair{}, User{}, err
	}
	return TokenPair{Token: out.Token, RefreshToken: out.RefreshToken}, out.User, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refreshToken exchanges the refresh token for a rotated pair. Only the
// refresh flow in client.go calls this.
func (c *Client) refreshToken(ctx context.Context, refreshToken string) (TokenPair, error) {
	var out TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/refresh-token", refreshRequest{RefreshToken: refreshToken}, &out, WithoutAuthRetry())
	if err != nil {
		return TokenPair{}, err
	}
	return out, nil
}

// Logout tells the backend to invalidate the session. Best effort by
// contract: callers swallow the error and clear local state regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, WithoutAuthRetry())
}

type meResponse struct {
	User User `json:"user"`
}

// Me returns the user attached to the current access token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out meResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdatePassword changes the current user's password. Pure passthrough; no
// local session state changes.
func (c *Client) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.do(ctx, http.MethodPut, "/auth/update-password", updatePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, nil)
}
