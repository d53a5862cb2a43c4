package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MediaType distinguishes gallery entries; media files themselves live on
// the CDN, the backend only stores their URLs.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// GalleryItem is a single photo or video shown on the gallery page.
type GalleryItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	MediaURL  string    `json:"mediaUrl"`
	MediaType MediaType `json:"mediaType"`
	CreatedAt time.Time `json:"createdAt"`
}

// GalleryItemInput is the create/update payload for a gallery item.
type GalleryItemInput struct {
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	MediaURL  string    `json:"mediaUrl"`
	MediaType MediaType `json:"mediaType"`
}

func (in GalleryItemInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("gallery item title is required")
	}
	if in.MediaURL == "" {
		return fmt.Errorf("gallery item media URL is required")
	}
	if in.MediaType != MediaImage && in.MediaType != MediaVideo {
		return fmt.Errorf("gallery item media type must be %q or %q", MediaImage, MediaVideo)
	}
	return nil
}

// ListGallery returns gallery items, optionally restricted to a category.
func (c *Client) ListGallery(ctx context.Context, category string) ([]GalleryItem, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	var out []GalleryItem
	if err := c.do(ctx, http.MethodGet, "/gallery", nil, &out, WithQuery(q)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGalleryItem(ctx context.Context, in GalleryItemInput) (GalleryItem, error) {
	if err := in.Validate(); err != nil {
		return GalleryItem{}, err
	}
	var out GalleryItem
	if err := c.do(ctx, http.MethodPost, "/gallery", in, &out); err != nil {
		return GalleryItem{}, err
	}
	return out, nil
}

func (c *Client) UpdateGalleryItem(ctx context.Context, id string, in GalleryItemInput) (GalleryItem, error) {
	if err := in.Validate(); err != nil {
		return GalleryItem{}, err
	}
	var out GalleryItem
	if err := c.do(ctx, http.MethodPut, "/gallery/"+url.PathEscape(id), in, &out); err != nil {
		return GalleryItem{}, err
	}
	return out, nil
}

func (c *Client) DeleteGalleryItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/gallery/"+url.PathEscape(id), nil, nil)
}
