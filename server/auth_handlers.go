package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	syserrors "github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/internal/errors"
)

func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPublicPage(w, r, "Admin Login", "login.html", nil)
	}
}

// LoginSubmitHandler runs the full login flow: local lockout check, backend
// authentication, browser-session creation and idle-monitor start.
func (s *Server) LoginSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminLogin, "Invalid form submission.")
			return
		}
		email := r.FormValue("email")
		password := r.FormValue("password")
		if email == "" || password == "" {
			redirectWithError(w, r, RouteAdminLogin, "Email and password are required.")
			return
		}

		blocked, cooldown, err := s.lockout.Blocked()
		if err != nil {
			s.log.Warn().Err(err).Msg("lockout check failed")
		}
		if blocked {
			s.metrics.ObserveLogin("locked_out")
			redirectWithError(w, r, RouteAdminLogin,
				fmt.Sprintf("Too many failed attempts. Try again in %d minutes.", int(cooldown.Minutes())+1))
			return
		}

		entry, err := s.newBrowserSession(uuid.New().String())
		if err != nil {
			s.log.Error().Err(err).Msg("failed to create browser session")
			redirectWithError(w, r, RouteAdminLogin, "Something went wrong, please try again.")
			return
		}

		user, err := entry.Store.Login(r.Context(), email, password)
		if err != nil {
			s.metrics.ObserveLogin("failure")
			if recordErr := s.lockout.RecordFailure(); recordErr != nil {
				s.log.Warn().Err(recordErr).Msg("failed to record login failure")
			}
			redirectWithError(w, r, RouteAdminLogin, loginErrorMessage(err))
			return
		}

		if err := s.lockout.Reset(); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset lockout counter")
		}
		if err := s.startMonitor(entry); err != nil {
			s.log.Error().Err(err).Msg("failed to start idle monitor")
			redirectWithError(w, r, RouteAdminLogin, "Something went wrong, please try again.")
			return
		}
		if err := s.sessions.Upsert(entry.ID, entry); err != nil {
			entry.StopMonitor()
			s.log.Error().Err(err).Msg("failed to register browser session")
			redirectWithError(w, r, RouteAdminLogin, "Something went wrong, please try again.")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     s.config.GetSessionCookieName(),
			Value:    entry.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int((24 * time.Hour).Seconds()),
		})
		s.metrics.ObserveLogin("success")
		s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("admin signed in")
		http.Redirect(w, r, RouteAdminDashboard, http.StatusSeeOther)
	}
}

// loginErrorMessage distinguishes the login failure classes by their error
// taxonomy, not by status-code plumbing in the handler.
func loginErrorMessage(err error) string {
	switch {
	case syserrors.Is(err, syserrors.ErrAccountLocked) || syserrors.Is(err, syserrors.ErrRateLimited):
		return "This account is temporarily locked. Try again later."
	case syserrors.Is(err, syserrors.ErrForbidden):
		return "This account has been deactivated. Contact a superadmin."
	case syserrors.Is(err, syserrors.ErrUnauthorized):
		return "Invalid email or password."
	case syserrors.Is(err, syserrors.ErrNetworkFailure):
		return "Could not reach the server, please try again."
	default:
		return "Login failed, please try again."
	}
}

// LogoutHandler ends the browser session explicitly.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if entry, ok := s.resolveSession(r); ok {
			s.endSession(entry)
		}
		http.SetCookie(w, &http.Cookie{
			Name:   s.config.GetSessionCookieName(),
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		redirectWithFlash(w, r, RouteAdminLogin, "You have been signed out.")
	}
}

type sessionStatus struct {
	Authenticated bool `json:"authenticated"`
	Warned        bool `json:"warned"`
}

// SessionStatusHandler backs the admin UI's expiry-warning banner poll.
// It deliberately does not count as activity.
func (s *Server) SessionStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		status := sessionStatus{Authenticated: true, Warned: entry.Warned()}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			s.log.Debug().Err(err).Msg("failed to encode session status")
		}
	}
}

func (s *Server) PasswordFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderAdminPage(w, r, "Change Password", "admin_password.html", nil)
	}
}

func (s *Server) PasswordUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry := sessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminPassword, "Invalid form submission.")
			return
		}
		current := r.FormValue("current_password")
		updated := r.FormValue("new_password")
		if current == "" || updated == "" {
			redirectWithError(w, r, RouteAdminPassword, "Both passwords are required.")
			return
		}
		if updated != r.FormValue("confirm_password") {
			redirectWithError(w, r, RouteAdminPassword, "New passwords do not match.")
			return
		}
		if err := entry.Store.UpdatePassword(r.Context(), current, updated); err != nil {
			redirectWithError(w, r, RouteAdminPassword, userMessage(err))
			return
		}
		redirectWithFlash(w, r, RouteAdminPassword, "Password updated.")
	}
}
