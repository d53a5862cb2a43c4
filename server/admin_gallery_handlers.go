package server

import (
	"net/http"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

func galleryInputFromForm(r *http.Request) backend.GalleryItemInput {
	return backend.GalleryItemInput{
		Title:     r.FormValue("title"),
		Category:  r.FormValue("category"),
		MediaURL:  r.FormValue("media_url"),
		MediaType: backend.MediaType(r.FormValue("media_type")),
	}
}

func (s *Server) AdminGalleryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		items, err := entry.Client.ListGallery(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			s.renderAdminPage(w, r, "Gallery", "admin_gallery.html", nil)
			return
		}
		s.renderAdminPage(w, r, "Gallery", "admin_gallery.html", items)
	}
}

func (s *Server) AdminGalleryCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminGallery, "Invalid form submission.")
			return
		}
		if _, err := entry.Client.CreateGalleryItem(r.Context(), galleryInputFromForm(r)); err != nil {
			redirectWithError(w, r, RouteAdminGallery, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminGallery, "Gallery item added.")
	}
}

func (s *Server) AdminGalleryEditFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		items, err := entry.Client.ListGallery(r.Context(), "")
		if err != nil {
			redirectWithError(w, r, RouteAdminGallery, userMessage(err))
			return
		}
		id := r.PathValue("id")
		for _, item := range items {
			if item.ID == id {
				s.renderAdminPage(w, r, "Edit Gallery Item", "admin_gallery_form.html", item)
				return
			}
		}
		redirectWithError(w, r, RouteAdminGallery, "Gallery item not found.")
	}
}

func (s *Server) AdminGalleryUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminGallery, "Invalid form submission.")
			return
		}
		if _, err := entry.Client.UpdateGalleryItem(r.Context(), r.PathValue("id"), galleryInputFromForm(r)); err != nil {
			redirectWithError(w, r, RouteAdminGallery, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminGallery, "Gallery item updated.")
	}
}

func (s *Server) AdminGalleryDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := entry.Client.DeleteGalleryItem(r.Context(), r.PathValue("id")); err != nil {
			redirectWithError(w, r, RouteAdminGallery, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminGallery, "Gallery item deleted.")
	}
}
