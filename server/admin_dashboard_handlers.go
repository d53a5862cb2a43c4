package server

import (
	"net/http"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

type dashboardPage struct {
	Stats backend.Stats
	Error string
}

// DashboardHandler shows the admin landing page with the backend's
// headline counters.
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		page := dashboardPage{}
		stats, err := entry.Client.DashboardStats(r.Context())
		if err != nil {
			page.Error = userMessage(err)
		} else {
			page.Stats = stats
		}
		s.renderAdminPage(w, r, "Dashboard", "dashboard.html", page)
	}
}
