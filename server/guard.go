package server

import (
	"context"
	"net/http"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/server/browsersession"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the browser-session entry
	ContextKeySession ContextKey = "browser_session"
	// ContextKeyUser stores the confirmed user
	ContextKeyUser ContextKey = "user"
)

// RequireSessionAuth gates the admin subtree. Unauthenticated browsers are
// redirected to the login screen; authenticated users whose role is not in
// allowedRoles (when non-empty) are redirected to the dashboard. The
// session is confirmed against the backend before the first allow/deny
// decision when no user is cached; the browser simply waits on the
// response while that check is in flight.
func (s *Server) RequireSessionAuth(allowedRoles ...backend.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			entry, ok := s.resolveSession(r)
			if !ok || !entry.Store.IsAuthenticated() {
				http.Redirect(w, r, RouteAdminLogin+"?error=Session+expired", http.StatusSeeOther)
				return
			}

			user := entry.Store.User()
			if user == nil {
				// Tokens survived a restart but the user did not; confirm
				// the session before deciding anything.
				confirmed, err := entry.Store.GetCurrentUser(r.Context())
				if err != nil {
					s.endSession(entry)
					http.Redirect(w, r, RouteAdminLogin+"?error=Session+expired", http.StatusSeeOther)
					return
				}
				user = &confirmed
			}

			if len(allowedRoles) > 0 && !roleAllowed(user.Role, allowedRoles) {
				http.Redirect(w, r, RouteAdminDashboard, http.StatusSeeOther)
				return
			}

			// A guarded page view is user activity: reset the idle timers
			// and drop any standing expiry warning.
			entry.Activity.Tick()
			entry.ClearWarned()

			ctx := context.WithValue(r.Context(), ContextKeySession, entry)
			ctx = context.WithValue(ctx, ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// AttachSession resolves the browser session without counting the request
// as user activity. The session-status poll uses it so the poll itself
// never defers the idle timeout.
func (s *Server) AttachSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			entry, ok := s.resolveSession(r)
			if !ok || !entry.Store.IsAuthenticated() {
				http.Error(w, `{"authenticated": false}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ContextKeySession, entry)
			next(w, r.WithContext(ctx))
		}
	}
}

// resolveSession finds the browser session for the request's cookie,
// rehydrating from the session's durable storage after a server restart.
func (s *Server) resolveSession(r *http.Request) (*browsersession.Entry, bool) {
	cookie, err := r.Cookie(s.config.GetSessionCookieName())
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	if entry, err := s.sessions.Get(cookie.Value); err == nil {
		if entry.Ended() {
			_ = s.sessions.Delete(entry.ID)
			return nil, false
		}
		return entry, true
	}

	// Unknown cookie: the server may have restarted. Rebuild the entry
	// from this session's persisted tokens; Initialize decides whether
	// anything authenticated survives.
	entry, err := s.newBrowserSession(cookie.Value)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to rehydrate browser session")
		return nil, false
	}
	if !entry.Store.IsAuthenticated() {
		return nil, false
	}
	if err := s.startMonitor(entry); err != nil {
		s.log.Warn().Err(err).Msg("failed to start idle monitor for rehydrated session")
		return nil, false
	}
	if err := s.sessions.Upsert(entry.ID, entry); err != nil {
		entry.StopMonitor()
		return nil, false
	}
	s.log.Info().Str("session", entry.ID).Msg("browser session rehydrated")
	return entry, true
}

func roleAllowed(role backend.Role, allowed []backend.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// sessionFromContext returns the entry placed by the guard middleware.
func sessionFromContext(ctx context.Context) *browsersession.Entry {
	entry, _ := ctx.Value(ContextKeySession).(*browsersession.Entry)
	return entry
}

func userFromContext(ctx context.Context) *backend.User {
	user, _ := ctx.Value(ContextKeyUser).(*backend.User)
	return user
}
