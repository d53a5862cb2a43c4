package server

import (
	"net/http"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

func mandateInputFromForm(r *http.Request) backend.MandateInput {
	return backend.MandateInput{
		Title:        r.FormValue("title"),
		AcademicYear: r.FormValue("academic_year"),
		PDFURL:       r.FormValue("pdf_url"),
	}
}

type adminMandatesPage struct {
	Years    []backend.AcademicYear
	Mandates []backend.Mandate
	Selected string
}

// AdminMandatesListHandler lists mandate PDFs, filterable by academic
// year; the page also carries the create forms for mandates and years.
func (s *Server) AdminMandatesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		page := adminMandatesPage{Selected: r.URL.Query().Get("year")}
		if years, err := entry.Client.ListAcademicYears(r.Context()); err == nil {
			page.Years = years
		}
		if mandates, err := entry.Client.ListMandates(r.Context(), page.Selected); err == nil {
			page.Mandates = mandates
		}
		s.renderAdminPage(w, r, "Mandates", "admin_mandates.html", page)
	}
}

func (s *Server) AdminMandateCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminMandates, "Invalid form submission.")
			return
		}
		if _, err := entry.Client.CreateMandate(r.Context(), mandateInputFromForm(r)); err != nil {
			redirectWithError(w, r, RouteAdminMandates, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminMandates, "Mandate published.")
	}
}

func (s *Server) AdminMandateEditFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		mandates, err := entry.Client.ListMandates(r.Context(), "")
		if err != nil {
			redirectWithError(w, r, RouteAdminMandates, userMessage(err))
			return
		}
		id := r.PathValue("id")
		for _, m := range mandates {
			if m.ID == id {
				s.renderAdminPage(w, r, "Edit Mandate", "admin_mandate_form.html", m)
				return
			}
		}
		redirectWithError(w, r, RouteAdminMandates, "Mandate not found.")
	}
}

func (s *Server) AdminMandateUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminMandates, "Invalid form submission.")
			return
		}
		if _, err := entry.Client.UpdateMandate(r.Context(), r.PathValue("id"), mandateInputFromForm(r)); err != nil {
			redirectWithError(w, r, RouteAdminMandates, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminMandates, "Mandate updated.")
	}
}

func (s *Server) AdminMandateDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := entry.Client.DeleteMandate(r.Context(), r.PathValue("id")); err != nil {
			redirectWithError(w, r, RouteAdminMandates, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminMandates, "Mandate deleted.")
	}
}

func (s *Server) AdminYearCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminMandates, "Invalid form submission.")
			return
		}
		if _, err := entry.Client.CreateAcademicYear(r.Context(), r.FormValue("year")); err != nil {
			redirectWithError(w, r, RouteAdminMandates, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminMandates, "Academic year added.")
	}
}

func (s *Server) AdminYearDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := entry.Client.DeleteAcademicYear(r.Context(), r.PathValue("id")); err != nil {
			redirectWithError(w, r, RouteAdminMandates, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminMandates, "Academic year removed.")
	}
}
