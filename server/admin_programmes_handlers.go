package server

import (
	"net/http"
	"strconv"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

func programmeInputFromForm(r *http.Request) backend.ProgrammeInput {
	seats, _ := strconv.Atoi(r.FormValue("seats"))
	return backend.ProgrammeInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Duration:    r.FormValue("duration"),
		Eligibility: r.FormValue("eligibility"),
		Seats:       seats,
		ImageURL:    r.FormValue("image_url"),
	}
}

// AdminProgrammesListHandler lists programmes with the search filter; the
// list page carries the create form.
func (s *Server) AdminProgrammesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		programmes, err := entry.Client.ListProgrammes(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			s.renderAdminPage(w, r, "Programmes", "admin_programmes.html", nil)
			return
		}
		s.renderAdminPage(w, r, "Programmes", "admin_programmes.html", programmes)
	}
}

func (s *Server) AdminProgrammeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminProgrammes, "Invalid form submission.")
			return
		}
		if _, err := entry.Client.CreateProgramme(r.Context(), programmeInputFromForm(r)); err != nil {
			redirectWithError(w, r, RouteAdminProgrammes, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminProgrammes, "Programme created.")
	}
}

func (s *Server) AdminProgrammeEditFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		programme, err := entry.Client.GetProgramme(r.Context(), r.PathValue("id"))
		if err != nil {
			redirectWithError(w, r, RouteAdminProgrammes, userMessage(err))
			return
		}
		s.renderAdminPage(w, r, "Edit Programme", "admin_programme_form.html", programme)
	}
}

func (s *Server) AdminProgrammeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminProgrammes, "Invalid form submission.")
			return
		}
		if _, err := entry.Client.UpdateProgramme(r.Context(), r.PathValue("id"), programmeInputFromForm(r)); err != nil {
			redirectWithError(w, r, RouteAdminProgrammes, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminProgrammes, "Programme updated.")
	}
}

func (s *Server) AdminProgrammeDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := entry.Client.DeleteProgramme(r.Context(), r.PathValue("id")); err != nil {
			redirectWithError(w, r, RouteAdminProgrammes, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminProgrammes, "Programme deleted.")
	}
}
