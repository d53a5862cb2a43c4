package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// AdminUser is an account that can sign in to the admin panel. Only
// superadmins may manage these.
type AdminUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminUserInput is the create/update payload for an admin account.
// Password is only honoured on create.
type AdminUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

func (in AdminUserInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("admin user name is required")
	}
	if in.Email == "" {
		return fmt.Errorf("admin user email is required")
	}
	if in.Role != RoleAdmin && in.Role != RoleSuperAdmin {
		return fmt.Errorf("admin user role must be %q or %q", RoleAdmin, RoleSuperAdmin)
	}
	return nil
}

func (c *Client) ListAdminUsers(ctx context.Context) ([]AdminUser, error) {
	var out []AdminUser
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAdminUser(ctx context.Context, in AdminUserInput) (AdminUser, error) {
	if err := in.Validate(); err != nil {
		return AdminUser{}, err
	}
	var out AdminUser
	if err := c.do(ctx, http.MethodPost, "/admin/users", in, &out); err != nil {
		return AdminUser{}, err
	}
	return out, nil
}

func (c *Client) UpdateAdminUser(ctx context.Context, id string, in AdminUserInput) (AdminUser, error) {
	if err := in.Validate(); err != nil {
		return AdminUser{}, err
	}
	var out AdminUser
	if err := c.do(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id), in, &out); err != nil {
		return AdminUser{}, err
	}
	return out, nil
}

// SetAdminUserActive enables or disables an account. Deactivated accounts
// fail login with 403 on the backend.
func (c *Client) SetAdminUserActive(ctx context.Context, id string, active bool) (AdminUser, error) {
	var out AdminUser
	err := c.do(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id)+"/active", map[string]bool{"active": active}, &out)
	if err != nil {
		return AdminUser{}, err
	}
	return out, nil
}

func (c *Client) DeleteAdminUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil)
}
