package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ActivitySource emits a tick whenever the user does something that should
// keep their session alive. The web server feeds one tick per authenticated
// request; tests drive it directly.
type ActivitySource interface {
	// Subscribe registers a listener and returns a cancel function that
	// detaches it. Cancel must be safe to call more than once.
	Subscribe(listener func()) (cancel func())
}

// Broadcaster is the standard ActivitySource: fan-out of Tick calls to all
// subscribed listeners.
type Broadcaster struct {
	mu        sync.Mutex
	listeners map[int]func()
	nextID    int
}

var _ ActivitySource = (*Broadcaster)(nil)

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[int]func())}
}

// Tick notifies every listener of user activity.
func (b *Broadcaster) Tick() {
	b.mu.Lock()
	listeners := make([]func(), 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.mu.Unlock()
	for _, l := range listeners {
		l()
	}
}

func (b *Broadcaster) Subscribe(listener func()) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = listener
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Monitor ends an idle session after a configurable timeout, with a warning
// five minutes (by default) ahead. Timers measure from the last activity
// tick, not from login: any qualifying activity pushes both fire times out
// wholesale.
type Monitor struct {
	source      ActivitySource
	timeout     time.Duration
	warningLead time.Duration
	log         zerolog.Logger

	mu           sync.Mutex
	warningTimer *time.Timer
	hardTimer    *time.Timer
	unsubscribe  func()
	running      bool
}

// NewMonitor creates an idle monitor. warningLead must be shorter than
// timeout.
func NewMonitor(source ActivitySource, timeout, warningLead time.Duration, log zerolog.Logger) (*Monitor, error) {
	if source == nil {
		return nil, errors.New("[NewMonitor] activity source is required")
	}
	if warningLead <= 0 || warningLead >= timeout {
		return nil, errors.Errorf("[NewMonitor] warning lead %s must fall inside timeout %s", warningLead, timeout)
	}
	return &Monitor{
		source:      source,
		timeout:     timeout,
		warningLead: warningLead,
		log:         log,
	}, nil
}

// Start arms the timer pair and begins listening for activity. At most one
// live pair exists: starting again cancels the previous pair first. The
// returned stop function tears everything down and is idempotent.
func (m *Monitor) Start(onWarning, onTimeout func()) (stop func()) {
	m.mu.Lock()
	m.stopLocked()

	m.running = true
	m.armLocked(onWarning, onTimeout)
	m.unsubscribe = m.source.Subscribe(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.running {
			return
		}
		m.cancelTimersLocked()
		m.armLocked(onWarning, onTimeout)
	})
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.stopLocked()
	}
}

// armLocked schedules the warning at timeout-warningLead and the hard
// timeout at timeout from now. Callers hold m.mu.
func (m *Monitor) armLocked(onWarning, onTimeout func()) {
	m.warningTimer = time.AfterFunc(m.timeout-m.warningLead, func() {
		m.mu.Lock()
		running := m.running
		m.mu.Unlock()
		if running {
			m.log.Debug().Msg("session expiry warning")
			onWarning()
		}
	})
	m.hardTimer = time.AfterFunc(m.timeout, func() {
		m.mu.Lock()
		running := m.running
		// Expired is terminal until an external Start.
		m.stopLocked()
		m.mu.Unlock()
		if running {
			m.log.Info().Msg("session idle timeout reached")
			onTimeout()
		}
	})
}

func (m *Monitor) cancelTimersLocked() {
	if m.warningTimer != nil {
		m.warningTimer.Stop()
		m.warningTimer = nil
	}
	if m.hardTimer != nil {
		m.hardTimer.Stop()
		m.hardTimer = nil
	}
}

func (m *Monitor) stopLocked() {
	m.cancelTimersLocked()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.running = false
}
