package session_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/siddhagirinursing4-ops/siddhagiri-nursing-sub000/session"
)

// Monitor tests run on millisecond timers; generous margins keep them
// stable on loaded CI machines.
const (
	testTimeout = 200 * time.Millisecond
	testLead    = 100 * time.Millisecond
)

type monitorFixture struct {
	activity *session.Broadcaster
	monitor  *session.Monitor
	warnings int64
	timeouts int64
}

func setupMonitorFixture(t *testing.T) *monitorFixture {
	t.Helper()

	activity := session.NewBroadcaster()
	monitor, err := session.NewMonitor(activity, testTimeout, testLead, zerolog.Nop())
	require.NoError(t, err)
	return &monitorFixture{activity: activity, monitor: monitor}
}

func (f *monitorFixture) start() func() {
	return f.monitor.Start(
		func() { atomic.AddInt64(&f.warnings, 1) },
		func() { atomic.AddInt64(&f.timeouts, 1) },
	)
}

func (f *monitorFixture) warningCount() int64 { return atomic.LoadInt64(&f.warnings) }
func (f *monitorFixture) timeoutCount() int64 { return atomic.LoadInt64(&f.timeouts) }

func TestNewMonitor_Validation(t *testing.T) {
	activity := session.NewBroadcaster()

	_, err := session.NewMonitor(nil, time.Minute, time.Second, zerolog.Nop())
	require.Error(t, err)

	_, err = session.NewMonitor(activity, time.Minute, time.Minute, zerolog.Nop())
	require.Error(t, err)

	_, err = session.NewMonitor(activity, time.Minute, 2*time.Minute, zerolog.Nop())
	require.Error(t, err)

	_, err = session.NewMonitor(activity, time.Minute, 0, zerolog.Nop())
	require.Error(t, err)
}

func TestMonitor_WarningThenTimeout(t *testing.T) {
	f := setupMonitorFixture(t)
	stop := f.start()
	defer stop()

	// Inside the warning window: warning fired, session still alive.
	time.Sleep(testTimeout - testLead + 30*time.Millisecond)
	require.EqualValues(t, 1, f.warningCount())
	require.EqualValues(t, 0, f.timeoutCount())

	time.Sleep(testLead)
	require.EqualValues(t, 1, f.timeoutCount())
}

func TestMonitor_ActivityDefersTimers(t *testing.T) {
	f := setupMonitorFixture(t)
	stop := f.start()
	defer stop()

	// Keep ticking before the warning point; nothing may fire.
	for i := 0; i < 4; i++ {
		time.Sleep(testTimeout / 4)
		f.activity.Tick()
	}
	require.EqualValues(t, 0, f.warningCount())
	require.EqualValues(t, 0, f.timeoutCount())

	// Going quiet lets the full sequence run from the last tick.
	time.Sleep(testTimeout + 50*time.Millisecond)
	require.EqualValues(t, 1, f.warningCount())
	require.EqualValues(t, 1, f.timeoutCount())
}

func TestMonitor_StopPreventsCallbacks(t *testing.T) {
	f := setupMonitorFixture(t)
	stop := f.start()
	stop()

	time.Sleep(testTimeout + 50*time.Millisecond)
	require.EqualValues(t, 0, f.warningCount())
	require.EqualValues(t, 0, f.timeoutCount())
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	f := setupMonitorFixture(t)
	stop := f.start()

	stop()
	stop()
	stop()

	// Activity after stop must not rearm anything.
	f.activity.Tick()
	time.Sleep(testTimeout + 50*time.Millisecond)
	require.EqualValues(t, 0, f.timeoutCount())
}

func TestMonitor_ExpiryIsTerminal(t *testing.T) {
	f := setupMonitorFixture(t)
	stop := f.start()
	defer stop()

	time.Sleep(testTimeout + 50*time.Millisecond)
	require.EqualValues(t, 1, f.timeoutCount())

	// Ticks after expiry must not restart the timers.
	f.activity.Tick()
	time.Sleep(testTimeout + 50*time.Millisecond)
	require.EqualValues(t, 1, f.timeoutCount())
	require.EqualValues(t, 1, f.warningCount())
}

func TestMonitor_RestartAfterExpiry(t *testing.T) {
	f := setupMonitorFixture(t)
	stop := f.start()
	time.Sleep(testTimeout + 50*time.Millisecond)
	require.EqualValues(t, 1, f.timeoutCount())
	stop()

	// An explicit Start arms a fresh pair, as after a new login.
	stop = f.start()
	defer stop()
	time.Sleep(testTimeout + 50*time.Millisecond)
	require.EqualValues(t, 2, f.timeoutCount())
}

func TestBroadcaster_CancelIsIdempotent(t *testing.T) {
	b := session.NewBroadcaster()
	var hits int64
	cancel := b.Subscribe(func() { atomic.AddInt64(&hits, 1) })

	b.Tick()
	require.EqualValues(t, 1, atomic.LoadInt64(&hits))

	cancel()
	cancel()
	b.Tick()
	require.EqualValues(t, 1, atomic.LoadInt64(&hits))
}
