package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sourcegraph/conc/pool"

	syserrors "github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/internal/errors"
)

// ApplicationStatus tracks how far a lead has been processed by the office.
type ApplicationStatus string

const (
	ApplicationNew       ApplicationStatus = "new"
	ApplicationContacted ApplicationStatus = "contacted"
	ApplicationClosed    ApplicationStatus = "closed"
)

// Application is a prospective-student enquiry submitted via the contact
// form.
type Application struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Programme string            `json:"programme"`
	Message   string            `json:"message"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ApplicationInput is the contact-form payload.
type ApplicationInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Programme string `json:"programme"`
	Message   string `json:"message"`
}

func (in ApplicationInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("applicant name is required")
	}
	if in.Email == "" && in.Phone == "" {
		return fmt.Errorf("an email address or phone number is required")
	}
	return nil
}

func (in ApplicationInput) relayForm() map[string]string {
	return map[string]string{
		"name":      in.Name,
		"email":     in.Email,
		"phone":     in.Phone,
		"programme": in.Programme,
		"message":   in.Message,
	}
}

// SubmitApplication delivers a contact-form submission both to the backend
// and to the email relay in parallel. The submission counts as delivered if
// either channel succeeds.
func (c *Client) SubmitApplication(ctx context.Context, in ApplicationInput, relay *FormRelay) error {
	if err := in.Validate(); err != nil {
		return syserrors.Wrapf(syserrors.ErrValidation, "[SubmitApplication] %v", err)
	}

	var backendErr, relayErr error
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		backendErr = c.do(ctx, http.MethodPost, "/applications", in, nil, WithoutAuthRetry())
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if relay == nil {
			relayErr = fmt.Errorf("no relay configured")
			return nil
		}
		relayErr = relay.Forward(ctx, in.relayForm())
		return nil
	})
	_ = p.Wait()

	if backendErr != nil && relayErr != nil {
		return syserrors.Wrapf(backendErr, "[SubmitApplication] both delivery channels failed")
	}
	if backendErr != nil {
		c.log.Warn().Err(backendErr).Msg("application stored via relay only")
	}
	return nil
}

// ListApplications returns submitted applications, optionally filtered by
// status.
func (c *Client) ListApplications(ctx context.Context, status ApplicationStatus) ([]Application, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var out []Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, &out, WithQuery(q)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (Application, error) {
	var out Application
	if err := c.do(ctx, http.MethodGet, "/applications/"+url.PathEscape(id), nil, &out); err != nil {
		return Application{}, err
	}
	return out, nil
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, status ApplicationStatus) (Application, error) {
	var out Application
	err := c.do(ctx, http.MethodPut, "/applications/"+url.PathEscape(id), map[string]string{"status": string(status)}, &out)
	if err != nil {
		return Application{}, err
	}
	return out, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/applications/"+url.PathEscape(id), nil, nil)
}
