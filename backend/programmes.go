package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Programme is a nursing course offered by the college.
type Programme struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Eligibility string    `json:"eligibility"`
	Seats       int       `json:"seats"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProgrammeInput is the create/update payload for a programme.
type ProgrammeInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Eligibility string `json:"eligibility"`
	Seats       int    `json:"seats"`
	ImageURL    string `json:"imageUrl"`
}

// Validate checks the required fields before submission. Business rules
// beyond this live on the backend.
func (in ProgrammeInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("programme title is required")
	}
	if in.Description == "" {
		return fmt.Errorf("programme description is required")
	}
	return nil
}

// ListProgrammes returns all programmes, optionally filtered by a search
// term matched server-side against title and description.
func (c *Client) ListProgrammes(ctx context.Context, search string) ([]Programme, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	var out []Programme
	if err := c.do(ctx, http.MethodGet, "/programmes", nil, &out, WithQuery(q)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProgramme(ctx context.Context, id string) (Programme, error) {
	var out Programme
	if err := c.do(ctx, http.MethodGet, "/programmes/"+url.PathEscape(id), nil, &out); err != nil {
		return Programme{}, err
	}
	return out, nil
}

func (c *Client) CreateProgramme(ctx context.Context, in ProgrammeInput) (Programme, error) {
	if err := in.Validate(); err != nil {
		return Programme{}, err
	}
	var out Programme
	if err := c.do(ctx, http.MethodPost, "/programmes", in, &out); err != nil {
		return Programme{}, err
	}
	return out, nil
}

func (c *Client) UpdateProgramme(ctx context.Context, id string, in ProgrammeInput) (Programme, error) {
	if err := in.Validate(); err != nil {
		return Programme{}, err
	}
	var out Programme
	if err := c.do(ctx, http.MethodPut, "/programmes/"+url.PathEscape(id), in, &out); err != nil {
		return Programme{}, err
	}
	return out, nil
}

func (c *Client) DeleteProgramme(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/programmes/"+url.PathEscape(id), nil, nil)
}
