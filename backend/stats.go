package backend

import (
	"context"
	"net/http"
)

// Stats is the headline view shown on the admin dashboard.
type Stats struct {
	Programmes      int           `json:"programmes"`
	GalleryItems    int           `json:"galleryItems"`
	Mandates        int           `json:"mandates"`
	Applications    int           `json:"applications"`
	NewApplications int           `json:"newApplications"`
	Recent          []Application `json:"recentApplications"`
}

// DashboardStats fetches the admin dashboard counters.
func (c *Client) DashboardStats(ctx context.Context) (Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &out); err != nil {
		return Stats{}, err
	}
	return out, nil
}
