package server

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

//go:embed templates/*.html
var templateFS embed.FS

const contentTypeHTML = "text/html; charset=utf-8"

// pageData is what every template renders against.
type pageData struct {
	AppName string
	Title   string
	Active  string
	User    *backend.User
	Warned  bool
	Flash   string
	Error   string
	Data    interface{}
}

// parsePage loads the layout plus one content template. Parsed per render,
// like the rest of the template handling here; the embedded FS makes this
// cheap enough.
func parsePage(layout, page string) (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/"+layout, "templates/"+page)
}

// renderPublicPage renders a public-site page in the public layout.
func (s *Server) renderPublicPage(w http.ResponseWriter, r *http.Request, title, page string, data interface{}) {
	tmpl, err := parsePage("layout.html", page)
	if err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("failed to parse template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}
	pd := pageData{
		AppName: s.config.GetAppName(),
		Title:   title,
		Active:  strings.TrimSuffix(page, ".html"),
		Flash:   r.URL.Query().Get("flash"),
		Error:   r.URL.Query().Get("error"),
		Data:    data,
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.ExecuteTemplate(w, "layout.html", pd); err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("failed to render template")
	}
}

// renderAdminPage renders an admin-panel page in the admin layout, with the
// signed-in user and the expiry-warning banner state.
func (s *Server) renderAdminPage(w http.ResponseWriter, r *http.Request, title, page string, data interface{}) {
	tmpl, err := parsePage("admin_layout.html", page)
	if err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("failed to parse template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	pd := pageData{
		AppName: s.config.GetAppName(),
		Title:   title,
		Active:  strings.TrimSuffix(page, ".html"),
		Flash:   r.URL.Query().Get("flash"),
		Error:   r.URL.Query().Get("error"),
		Data:    data,
	}
	if entry := sessionFromContext(r.Context()); entry != nil {
		pd.Warned = entry.Warned()
	}
	if user := userFromContext(r.Context()); user != nil {
		pd.User = user
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	if err := tmpl.ExecuteTemplate(w, "admin_layout.html", pd); err != nil {
		s.log.Error().Err(err).Str("page", page).Msg("failed to render template")
	}
}
