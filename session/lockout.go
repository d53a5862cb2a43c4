package session

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Lockout is the local failed-login heuristic: after maxAttempts failures
// inside the window, further submits are blocked until the window passes.
// It is a UX accelerant only; the backend's own lockout stays authoritative
// and uses its own thresholds.
type Lockout struct {
	storage     Storage
	maxAttempts int
	window      time.Duration
	nowTime     func() time.Time
}

// LockoutOption configures a Lockout.
type LockoutOption func(*Lockout)

// WithLockoutNowTime sets the clock (for tests).
func WithLockoutNowTime(nowFunc func() time.Time) LockoutOption {
	return func(l *Lockout) {
		l.nowTime = nowFunc
	}
}

// NewLockout creates a lockout tracker persisted through the same durable
// storage as the credential store.
func NewLockout(storage Storage, maxAttempts int, window time.Duration, options ...LockoutOption) (*Lockout, error) {
	if storage == nil {
		return nil, errors.New("[NewLockout] storage is required")
	}
	if maxAttempts <= 0 || window <= 0 {
		return nil, errors.New("[NewLockout] maxAttempts and window must be positive")
	}
	l := &Lockout{
		storage:     storage,
		maxAttempts: maxAttempts,
		window:      window,
		nowTime:     time.Now,
	}
	for _, opt := range options {
		opt(l)
	}
	return l, nil
}

// Blocked reports whether submits are currently blocked and, if so, how
// long the cooldown has left. A stale window resets the counter.
func (l *Lockout) Blocked() (bool, time.Duration, error) {
	attempts, last, err := l.read()
	if err != nil {
		return false, 0, err
	}
	if attempts < l.maxAttempts {
		return false, 0, nil
	}
	elapsed := l.nowTime().Sub(last)
	if elapsed >= l.window {
		if err := l.Reset(); err != nil {
			return false, 0, err
		}
		return false, 0, nil
	}
	return true, l.window - elapsed, nil
}

// RecordFailure counts a failed login attempt. Attempts outside the window
// restart the count at one.
func (l *Lockout) RecordFailure() error {
	attempts, last, err := l.read()
	if err != nil {
		return err
	}
	now := l.nowTime()
	if now.Sub(last) >= l.window {
		attempts = 0
	}
	attempts++
	if err := l.storage.Set(KeyFailedAttempts, strconv.Itoa(attempts)); err != nil {
		return errors.Wrap(err, "[RecordFailure] failed to store attempt count")
	}
	if err := l.storage.Set(KeyLastFailedAttempt, strconv.FormatInt(now.UnixMilli(), 10)); err != nil {
		return errors.Wrap(err, "[RecordFailure] failed to store attempt time")
	}
	return nil
}

// Reset clears the counter, typically after a successful login.
func (l *Lockout) Reset() error {
	if err := l.storage.Delete(KeyFailedAttempts); err != nil {
		return errors.Wrap(err, "[Reset] failed to clear attempt count")
	}
	if err := l.storage.Delete(KeyLastFailedAttempt); err != nil {
		return errors.Wrap(err, "[Reset] failed to clear attempt time")
	}
	return nil
}

func (l *Lockout) read() (int, time.Time, error) {
	attemptsStr, ok, err := l.storage.Get(KeyFailedAttempts)
	if err != nil {
		return 0, time.Time{}, errors.Wrap(err, "[Lockout.read] failed to read attempt count")
	}
	if !ok {
		return 0, time.Time{}, nil
	}
	attempts, err := strconv.Atoi(attemptsStr)
	if err != nil {
		return 0, time.Time{}, nil
	}

	lastStr, ok, err := l.storage.Get(KeyLastFailedAttempt)
	if err != nil {
		return 0, time.Time{}, errors.Wrap(err, "[Lockout.read] failed to read attempt time")
	}
	if !ok {
		return attempts, time.Time{}, nil
	}
	millis, err := strconv.ParseInt(lastStr, 10, 64)
	if err != nil {
		return attempts, time.Time{}, nil
	}
	return attempts, time.UnixMilli(millis), nil
}
