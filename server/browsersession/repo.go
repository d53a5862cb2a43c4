package browsersession

import (
	"sync"
	"time"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/backend"
	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/session"
)

// Entry ties one signed-in browser to its own credential store, backend
// client and idle-monitor handle. The store owns all session state; the
// entry just keeps the per-browser wiring together.
type Entry struct {
	ID       string
	Store    *session.Store
	Client   *backend.Client
	Activity *session.Broadcaster

	// StopMonitor tears down the idle monitor. Idempotent.
	StopMonitor func()

	CreatedAt time.Time

	mu     sync.Mutex
	warned bool
	ended  bool
}

// MarkWarned records that the expiry warning fired; the admin UI shows a
// dismissible banner while this is set.
func (e *Entry) MarkWarned() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.warned = true
}

// ClearWarned resets the warning state after user activity.
func (e *Entry) ClearWarned() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.warned = false
}

func (e *Entry) Warned() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.warned
}

// MarkEnded records that the session was terminated (timeout or failed
// refresh); the next request from this browser is redirected to login.
func (e *Entry) MarkEnded() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ended = true
}

func (e *Entry) Ended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ended
}

// Repo stores browser-session entries keyed by the session cookie value.
type Repo interface {
	Upsert(sessionID string, entry *Entry) error
	Get(sessionID string) (*Entry, error)
	Delete(sessionID string) error
}
