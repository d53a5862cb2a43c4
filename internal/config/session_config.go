package config

import (
	"strconv"
	"time"
)

type Session struct{}

var _ SessionConfig = Session{}

// GetIdleTimeout returns how long a session may sit without user activity
// before it is ended. Configurable via SESSION_TIMEOUT_MINUTES.
func (Session) GetIdleTimeout() time.Duration {
	minutes, err := strconv.Atoi(GetEnv("SESSION_TIMEOUT_MINUTES", "30"))
	if err != nil || minutes <= 5 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// GetWarningLead returns how long before the hard timeout the expiry
// warning fires.
func (Session) GetWarningLead() time.Duration {
	return 5 * time.Minute
}

func (Session) GetSessionCookieName() string {
	return "snc_session"
}
