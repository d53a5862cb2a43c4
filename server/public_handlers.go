package server

import (
	"net/http"
	"net/url"

	syserrors "github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/internal/errors"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

// userMessage turns an error into something safe to show a visitor.
func userMessage(err error) string {
	var apiErr *backend.APIError
	if syserrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if syserrors.Is(err, syserrors.ErrNetworkFailure) {
		return "Could not reach the server, please try again."
	}
	if syserrors.Is(err, syserrors.ErrInternal) {
		return "Something went wrong, please try again."
	}
	// Pre-submit validation errors carry user-facing text already.
	return err.Error()
}

func redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?flash="+url.QueryEscape(msg), http.StatusSeeOther)
}

type homePage struct {
	Banner     backend.DynamicContent
	Welcome    backend.DynamicContent
	Programmes []backend.Programme
}

// HomeHandler renders the landing page: banner, welcome copy and a
// programme preview. Content failures degrade to an empty slot rather than
// a broken page.
func (s *Server) HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var page homePage
		if banner, err := s.public.GetDynamicContent(r.Context(), "home.banner"); err == nil {
			page.Banner = banner
		}
		if welcome, err := s.public.GetDynamicContent(r.Context(), "home.welcome"); err == nil {
			page.Welcome = welcome
		}
		if programmes, err := s.public.ListProgrammes(r.Context(), ""); err == nil {
			if len(programmes) > 3 {
				programmes = programmes[:3]
			}
			page.Programmes = programmes
		}
		s.renderPublicPage(w, r, "Home", "home.html", page)
	}
}

func (s *Server) ProgramsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		programmes, err := s.public.ListProgrammes(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			s.renderPublicPage(w, r, "Programs", "programs.html", nil)
			return
		}
		s.renderPublicPage(w, r, "Programs", "programs.html", programmes)
	}
}

func (s *Server) ProgramDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		programme, err := s.public.GetProgramme(r.Context(), r.PathValue("id"))
		if err != nil {
			if syserrors.Is(err, syserrors.ErrNotFound) {
				http.Error(w, "404 - Page Not Found", http.StatusNotFound)
				return
			}
			redirectWithError(w, r, RoutePrograms, userMessage(err))
			return
		}
		s.renderPublicPage(w, r, programme.Title, "program_detail.html", programme)
	}
}

func (s *Server) AdmissionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var page struct {
			Content    backend.DynamicContent
			Programmes []backend.Programme
		}
		if content, err := s.public.GetDynamicContent(r.Context(), "admissions.body"); err == nil {
			page.Content = content
		}
		if programmes, err := s.public.ListProgrammes(r.Context(), ""); err == nil {
			page.Programmes = programmes
		}
		s.renderPublicPage(w, r, "Admissions", "admissions.html", page)
	}
}

func (s *Server) GalleryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.public.ListGallery(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			s.renderPublicPage(w, r, "Gallery", "gallery.html", nil)
			return
		}
		s.renderPublicPage(w, r, "Gallery", "gallery.html", items)
	}
}

type mandatesPage struct {
	Years  []backend.AcademicYear
	ByYear map[string][]backend.Mandate
}

// MandatesHandler shows statutory documents grouped by academic year.
func (s *Server) MandatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := mandatesPage{ByYear: map[string][]backend.Mandate{}}
		years, err := s.public.ListAcademicYears(r.Context())
		if err != nil {
			s.renderPublicPage(w, r, "Mandates", "mandates.html", page)
			return
		}
		page.Years = years

		mandates, err := s.public.ListMandates(r.Context(), "")
		if err == nil {
			for _, m := range mandates {
				page.ByYear[m.AcademicYear] = append(page.ByYear[m.AcademicYear], m)
			}
		}
		s.renderPublicPage(w, r, "Mandates", "mandates.html", page)
	}
}

func (s *Server) ContactGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		programmes, _ := s.public.ListProgrammes(r.Context(), "")
		s.renderPublicPage(w, r, "Contact", "contact.html", programmes)
	}
}

// ContactPostHandler submits an application to the backend and the email
// relay in parallel; either succeeding counts as delivered.
func (s *Server) ContactPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteContact, "Invalid form submission.")
			return
		}
		in := backend.ApplicationInput{
			Name:      r.FormValue("name"),
			Email:     r.FormValue("email"),
			Phone:     r.FormValue("phone"),
			Programme: r.FormValue("programme"),
			Message:   r.FormValue("message"),
		}
		if err := in.Validate(); err != nil {
			redirectWithError(w, r, RouteContact, err.Error())
			return
		}
		if err := s.public.SubmitApplication(r.Context(), in, s.relay); err != nil {
			redirectWithError(w, r, RouteContact, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteContact, "Thank you! We received your enquiry and will be in touch.")
	}
}
