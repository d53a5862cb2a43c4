package server

import (
	"net/http"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

func (s *Server) AdminApplicationsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		status := backend.ApplicationStatus(r.URL.Query().Get("status"))
		applications, err := entry.Client.ListApplications(r.Context(), status)
		if err != nil {
			s.renderAdminPage(w, r, "Applications", "admin_applications.html", nil)
			return
		}
		s.renderAdminPage(w, r, "Applications", "admin_applications.html", applications)
	}
}

func (s *Server) AdminApplicationDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		application, err := entry.Client.GetApplication(r.Context(), r.PathValue("id"))
		if err != nil {
			redirectWithError(w, r, RouteAdminApplications, userMessage(err))
			return
		}
		s.renderAdminPage(w, r, "Application", "admin_application_detail.html", application)
	}
}

func (s *Server) AdminApplicationStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminApplications, "Invalid form submission.")
			return
		}
		id := r.PathValue("id")
		status := backend.ApplicationStatus(r.FormValue("status"))
		if _, err := entry.Client.UpdateApplicationStatus(r.Context(), id, status); err != nil {
			redirectWithError(w, r, RouteAdminApplications, userMessage(err))
			return
		}
		redirectWithFlash(w, r, "/admin/applications/"+id, "Status updated.")
	}
}

func (s *Server) AdminApplicationDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := entry.Client.DeleteApplication(r.Context(), r.PathValue("id")); err != nil {
			redirectWithError(w, r, RouteAdminApplications, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminApplications, "Application deleted.")
	}
}
