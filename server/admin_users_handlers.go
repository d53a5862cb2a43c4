package server

import (
	"net/http"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
)

func adminUserInputFromForm(r *http.Request) backend.AdminUserInput {
	return backend.AdminUserInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Role:     backend.Role(r.FormValue("role")),
		Password: r.FormValue("password"),
	}
}

func (s *Server) AdminUsersListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		users, err := entry.Client.ListAdminUsers(r.Context())
		if err != nil {
			s.renderAdminPage(w, r, "Admin Users", "admin_users.html", nil)
			return
		}
		s.renderAdminPage(w, r, "Admin Users", "admin_users.html", users)
	}
}

func (s *Server) AdminUserCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminUsers, "Invalid form submission.")
			return
		}
		if _, err := entry.Client.CreateAdminUser(r.Context(), adminUserInputFromForm(r)); err != nil {
			redirectWithError(w, r, RouteAdminUsers, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminUsers, "Admin user created.")
	}
}

func (s *Server) AdminUserEditFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		users, err := entry.Client.ListAdminUsers(r.Context())
		if err != nil {
			redirectWithError(w, r, RouteAdminUsers, userMessage(err))
			return
		}
		id := r.PathValue("id")
		for _, u := range users {
			if u.ID == id {
				s.renderAdminPage(w, r, "Edit Admin User", "admin_user_form.html", u)
				return
			}
		}
		redirectWithError(w, r, RouteAdminUsers, "Admin user not found.")
	}
}

func (s *Server) AdminUserUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminUsers, "Invalid form submission.")
			return
		}
		if _, err := entry.Client.UpdateAdminUser(r.Context(), r.PathValue("id"), adminUserInputFromForm(r)); err != nil {
			redirectWithError(w, r, RouteAdminUsers, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminUsers, "Admin user updated.")
	}
}

func (s *Server) AdminUserDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := entry.Client.DeleteAdminUser(r.Context(), r.PathValue("id")); err != nil {
			redirectWithError(w, r, RouteAdminUsers, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminUsers, "Admin user deleted.")
	}
}

// AdminUserActiveHandler toggles whether an account may sign in.
func (s *Server) AdminUserActiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminUsers, "Invalid form submission.")
			return
		}
		active := r.FormValue("active") == "true"
		if _, err := entry.Client.SetAdminUserActive(r.Context(), r.PathValue("id"), active); err != nil {
			redirectWithError(w, r, RouteAdminUsers, userMessage(err))
			return
		}
		if active {
			redirectWithFlash(w, r, RouteAdminUsers, "Admin user activated.")
			return
		}
		redirectWithFlash(w, r, RouteAdminUsers, "Admin user deactivated.")
	}
}
