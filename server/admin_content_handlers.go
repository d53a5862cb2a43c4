package server

import (
	"net/http"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

func (s *Server) AdminContentListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		entries, err := entry.Client.ListDynamicContent(r.Context())
		if err != nil {
			s.renderAdminPage(w, r, "Site Content", "admin_content.html", nil)
			return
		}
		s.renderAdminPage(w, r, "Site Content", "admin_content.html", entries)
	}
}

func (s *Server) AdminContentEditFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		content, err := entry.Client.GetDynamicContent(r.Context(), r.PathValue("key"))
		if err != nil {
			redirectWithError(w, r, RouteAdminContent, userMessage(err))
			return
		}
		s.renderAdminPage(w, r, "Edit Content", "admin_content_form.html", content)
	}
}

func (s *Server) AdminContentUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminContent, "Invalid form submission.")
			return
		}
		in := backend.DynamicContentInput{
			Title:    r.FormValue("title"),
			Body:     r.FormValue("body"),
			ImageURL: r.FormValue("image_url"),
		}
		if _, err := entry.Client.UpdateDynamicContent(r.Context(), r.PathValue("key"), in); err != nil {
			redirectWithError(w, r, RouteAdminContent, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminContent, "Content updated.")
	}
}
