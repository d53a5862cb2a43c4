package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
	syserrors "github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/internal/errors"
)

// AuthAPI is the slice of the backend client the credential store needs.
// *backend.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (backend.TokenPair, backend.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (backend.User, error)
	UpdatePassword(ctx context.Context, currentPassword, newPassword string) error
}

// Session holds the authenticated client's state. The IsAuthenticated flag
// is maintained so it is true exactly when both tokens are present; every
// mutation sets or clears the pair as a unit.
type Session struct {
	AccessToken     string
	RefreshToken    string
	User            *backend.User
	IsAuthenticated bool
}

// persistedState is the blob stored under KeyAuthState for rehydration.
type persistedState struct {
	User            *backend.User `json:"user,omitempty"`
	Token           string        `json:"token"`
	RefreshToken    string        `json:"refreshToken"`
	IsAuthenticated bool          `json:"isAuthenticated"`
}

// Store is the single source of truth for session data. It is an explicit
// dependency-injected object: construct one, call Initialize, pass it to
// whatever needs it. All durable-storage reads and writes happen here.
type Store struct {
	mu      sync.RWMutex
	api     AuthAPI
	storage Storage
	log     zerolog.Logger
	sess    Session
}

var _ backend.Credentials = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the store's logger.
func WithStoreLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates a credential store. api may be set later through
// BindAPI because the backend client and the store reference each other.
func NewStore(storage Storage, options ...StoreOption) (*Store, error) {
	if storage == nil {
		return nil, errors.New("[NewStore] storage is required")
	}
	s := &Store{
		storage: storage,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// BindAPI attaches the backend auth API. Must be called before Login,
// Logout, GetCurrentUser or UpdatePassword.
func (s *Store) BindAPI(api AuthAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = api
}

// Initialize reads persisted tokens from durable storage into memory and
// derives IsAuthenticated. It does not validate the tokens against the
// backend; the first authenticated request does that implicitly.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	access, _, err := s.storage.Get(KeyToken)
	if err != nil {
		return errors.Wrap(err, "[Initialize] failed to read access token")
	}
	refresh, _, err := s.storage.Get(KeyRefreshToken)
	if err != nil {
		return errors.Wrap(err, "[Initialize] failed to read refresh token")
	}

	var user *backend.User
	if blob, ok, err := s.storage.Get(KeyAuthState); err == nil && ok {
		var state persistedState
		if err := json.Unmarshal([]byte(blob), &state); err == nil {
			user = state.User
		}
	}

	s.sess = Session{
		AccessToken:     access,
		RefreshToken:    refresh,
		User:            user,
		IsAuthenticated: access != "" && refresh != "",
	}
	if exp, ok := backend.TokenExpiry(access); ok {
		s.log.Debug().Time("token_expiry", exp).Msg("session rehydrated")
	}
	return nil
}

// Login authenticates against the backend and stores the resulting session.
// Credential failures propagate untouched so callers can distinguish bad
// credentials from locked or deactivated accounts by status.
func (s *Store) Login(ctx context.Context, email, password string) (backend.User, error) {
	api := s.boundAPI()
	if api == nil {
		return backend.User{}, errors.New("[Login] no auth API bound")
	}

	pair, user, err := api.Login(ctx, email, password)
	if err != nil {
		return backend.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = Session{
		AccessToken:     pair.Token,
		RefreshToken:    pair.RefreshToken,
		User:            &user,
		IsAuthenticated: pair.Token != "" && pair.RefreshToken != "",
	}
	if err := s.persistLocked(); err != nil {
		return backend.User{}, err
	}
	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("logged in")
	return user, nil
}

// Logout best-effort notifies the backend, then unconditionally clears the
// session. The backend call failing is swallowed by contract.
func (s *Store) Logout(ctx context.Context) error {
	if api := s.boundAPI(); api != nil {
		if err := api.Logout(ctx); err != nil {
			s.log.Debug().Err(err).Msg("backend logout failed, clearing locally anyway")
		}
	}
	return s.Clear()
}

// GetCurrentUser returns the session's user, repopulating it from the
// backend when only tokens survived a restart. A failed lookup clears the
// session, same as a logout.
func (s *Store) GetCurrentUser(ctx context.Context) (backend.User, error) {
	s.mu.RLock()
	sess := s.sess
	s.mu.RUnlock()

	if sess.AccessToken == "" {
		return backend.User{}, syserrors.ErrSessionNotFound
	}
	if sess.User != nil {
		return *sess.User, nil
	}

	api := s.boundAPI()
	if api == nil {
		return backend.User{}, errors.New("[GetCurrentUser] no auth API bound")
	}
	user, err := api.Me(ctx)
	if err != nil {
		if clearErr := s.Clear(); clearErr != nil {
			s.log.Warn().Err(clearErr).Msg("failed to clear session after identity check failure")
		}
		return backend.User{}, errors.Wrap(err, "[GetCurrentUser] identity check failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.User = &user
	if err := s.persistLocked(); err != nil {
		return backend.User{}, err
	}
	return user, nil
}

// UpdatePassword is a passthrough to the backend.
func (s *Store) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	api := s.boundAPI()
	if api == nil {
		return errors.New("[UpdatePassword] no auth API bound")
	}
	return api.UpdatePassword(ctx, currentPassword, newPassword)
}

// Tokens implements backend.Credentials.
func (s *Store) Tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.AccessToken, s.sess.RefreshToken
}

// SetTokens replaces the token pair as a unit and persists it; the user is
// kept. Implements backend.Credentials for the refresh flow.
func (s *Store) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.AccessToken = accessToken
	s.sess.RefreshToken = refreshToken
	s.sess.IsAuthenticated = accessToken != "" && refreshToken != ""
	return s.persistLocked()
}

// Clear wipes the session in memory and in durable storage. Implements
// backend.Credentials for failed refreshes.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = Session{}
	var firstErr error
	for _, key := range []string{KeyToken, KeyRefreshToken, KeyAuthState} {
		if err := s.storage.Delete(key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return errors.Wrap(firstErr, "[Clear] failed to clear durable storage")
}

// IsAuthenticated reports whether a complete token pair is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.IsAuthenticated
}

// User returns the cached user, if any, without a backend round trip.
func (s *Store) User() *backend.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess.User == nil {
		return nil
	}
	u := *s.sess.User
	return &u
}

// Snapshot returns a copy of the full session state.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.sess
	if s.sess.User != nil {
		u := *s.sess.User
		sess.User = &u
	}
	return sess
}

func (s *Store) boundAPI() AuthAPI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.api
}

// persistLocked writes the whole layout: flat token keys plus the auth
// blob. Callers hold s.mu.
func (s *Store) persistLocked() error {
	blob, err := json.Marshal(persistedState{
		User:            s.sess.User,
		Token:           s.sess.AccessToken,
		RefreshToken:    s.sess.RefreshToken,
		IsAuthenticated: s.sess.IsAuthenticated,
	})
	if err != nil {
		return errors.Wrap(err, "[persist] failed to encode session state")
	}
	if err := s.storage.Set(KeyToken, s.sess.AccessToken); err != nil {
		return errors.Wrap(err, "[persist] failed to write access token")
	}
	if err := s.storage.Set(KeyRefreshToken, s.sess.RefreshToken); err != nil {
		return errors.Wrap(err, "[persist] failed to write refresh token")
	}
	if err := s.storage.Set(KeyAuthState, string(blob)); err != nil {
		return errors.Wrap(err, "[persist] failed to write session blob")
	}
	return nil
}
