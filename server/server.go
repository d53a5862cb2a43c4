package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/time/rate"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/internal/config"
	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/server/browsersession"
	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/session"
)

// Server is the college web front end: the public site plus the admin
// panel, all content fetched from the remote REST backend.
type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	log      zerolog.Logger
	dataFS   afero.Fs
	public   *backend.Client
	relay    *backend.FormRelay
	sessions browsersession.Repo
	lockout  *session.Lockout
	limiter  *IPRateLimiter
	metrics  *Metrics
}

// New wires the front end together. dataFS carries the durable client
// storage (session files, lockout counters) under the configured data
// folder.
func New(cfg config.Config, dataFS afero.Fs, sessions browsersession.Repo, log zerolog.Logger) (*Server, error) {
	public, err := backend.New(cfg.GetAPIBaseURL(), nil, backend.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create public backend client: %w", err)
	}

	lockoutStorage := session.NewFileStorage(dataFS, filepath.Join(cfg.GetDataFolder(), "localstorage.json"))
	lockout, err := session.NewLockout(lockoutStorage, cfg.GetMaxFailedAttempts(), cfg.GetLockoutWindow())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create lockout tracker: %w", err)
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		log:      log,
		dataFS:   dataFS,
		public:   public,
		relay:    backend.NewFormRelay(cfg.GetFormRelayURL(), log),
		sessions: sessions,
		lockout:  lockout,
		metrics:  NewMetrics(),
	}

	if cfg.GetEnableRateLimiting() {
		perMinute := cfg.GetLoginRatePerMinute()
		s.limiter = NewIPRateLimiter(rate.Limit(float64(perMinute)/60.0), cfg.GetLoginBurst())
	}

	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// newBrowserSession builds the per-browser wiring: its own credential
// store over its own storage file, a backend client bound to that store,
// and an idle monitor fed by the browser's requests.
func (s *Server) newBrowserSession(sessionID string) (*browsersession.Entry, error) {
	storage := session.NewFileStorage(s.dataFS, s.sessionStoragePath(sessionID))
	store, err := session.NewStore(storage, session.WithStoreLogger(s.log))
	if err != nil {
		return nil, fmt.Errorf("[newBrowserSession] failed to create credential store: %w", err)
	}

	entry := &browsersession.Entry{
		ID:       sessionID,
		Store:    store,
		Activity: session.NewBroadcaster(),
	}

	client, err := backend.New(s.config.GetAPIBaseURL(), store,
		backend.WithLogger(s.log),
		backend.WithSessionEndHandler(entry.MarkEnded),
		backend.WithRefreshObserver(s.metrics.ObserveRefresh),
	)
	if err != nil {
		return nil, fmt.Errorf("[newBrowserSession] failed to create backend client: %w", err)
	}
	store.BindAPI(client)
	entry.Client = client

	if err := store.Initialize(); err != nil {
		return nil, fmt.Errorf("[newBrowserSession] failed to initialize credential store: %w", err)
	}
	return entry, nil
}

// startMonitor arms the idle monitor for an authenticated browser session.
func (s *Server) startMonitor(entry *browsersession.Entry) error {
	monitor, err := session.NewMonitor(entry.Activity, s.config.GetIdleTimeout(), s.config.GetWarningLead(), s.log)
	if err != nil {
		return fmt.Errorf("[startMonitor] %w", err)
	}
	entry.StopMonitor = monitor.Start(
		entry.MarkWarned,
		func() { s.endSession(entry) },
	)
	return nil
}

// endSession closes a browser session after an idle timeout or a failed
// refresh: logout best effort, storage cleared, entry removed.
func (s *Server) endSession(entry *browsersession.Entry) {
	entry.MarkEnded()
	if entry.StopMonitor != nil {
		entry.StopMonitor()
	}
	if err := entry.Store.Logout(context.Background()); err != nil {
		s.log.Debug().Err(err).Msg("session cleanup logout failed")
	}
	if err := s.sessions.Delete(entry.ID); err != nil {
		s.log.Debug().Err(err).Str("session", entry.ID).Msg("failed to delete browser session")
	}
	s.log.Info().Str("session", entry.ID).Msg("session ended")
}

func (s *Server) sessionStoragePath(sessionID string) string {
	// Session IDs are UUIDs we minted ourselves, but keep the path flat
	// and extensionless input out of it anyway.
	return filepath.Join(s.config.GetDataFolder(), "sessions", strings.ReplaceAll(sessionID, string(filepath.Separator), "_")+".json")
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1])
		} else {
			s.logRoute("", parts[0])
		}
	}
}

func (s *Server) logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	s.log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
