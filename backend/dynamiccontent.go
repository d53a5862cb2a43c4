package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ContentKind distinguishes plain text blocks from homepage banners.
type ContentKind string

const (
	ContentText   ContentKind = "text"
	ContentBanner ContentKind = "banner"
)

// DynamicContent is an editable piece of site copy or a banner, addressed by
// a stable key the public templates render under.
type DynamicContent struct {
	ID        string      `json:"id"`
	Key       string      `json:"key"`
	Kind      ContentKind `json:"kind"`
	Title     string      `json:"title"`
	Body      string      `json:"body"`
	ImageURL  string      `json:"imageUrl"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// DynamicContentInput is the update payload for a content entry.
type DynamicContentInput struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl"`
}

func (in DynamicContentInput) Validate() error {
	if in.Title == "" && in.Body == "" && in.ImageURL == "" {
		return fmt.Errorf("content update must set at least one field")
	}
	return nil
}

// ListDynamicContent returns every editable content entry.
func (c *Client) ListDynamicContent(ctx context.Context) ([]DynamicContent, error) {
	var out []DynamicContent
	if err := c.do(ctx, http.MethodGet, "/dynamic-content", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDynamicContent fetches a single entry by its key. Public pages use
// this to fill their text and banner slots.
func (c *Client) GetDynamicContent(ctx context.Context, key string) (DynamicContent, error) {
	var out DynamicContent
	if err := c.do(ctx, http.MethodGet, "/dynamic-content/"+url.PathEscape(key), nil, &out); err != nil {
		return DynamicContent{}, err
	}
	return out, nil
}

func (c *Client) UpdateDynamicContent(ctx context.Context, key string, in DynamicContentInput) (DynamicContent, error) {
	if err := in.Validate(); err != nil {
		return DynamicContent{}, err
	}
	var out DynamicContent
	if err := c.do(ctx, http.MethodPut, "/dynamic-content/"+url.PathEscape(key), in, &out); err != nil {
		return DynamicContent{}, err
	}
	return out, nil
}
