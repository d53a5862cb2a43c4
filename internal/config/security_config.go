package config

import "time"

type SecurityConfig interface {
	GetMaxFailedAttempts() int
	GetLockoutWindow() time.Duration
	GetEnableRateLimiting() bool
	GetLoginRatePerMinute() int
	GetLoginBurst() int
}

type Security struct{}

var _ SecurityConfig = Security{}

// Local lockout heuristic thresholds. These are deliberately independent of
// whatever lockout policy the backend enforces; the backend remains
// authoritative.
func (Security) GetMaxFailedAttempts() int {
	return 3
}

func (Security) GetLockoutWindow() time.Duration {
	return 15 * time.Minute
}

func (Security) GetEnableRateLimiting() bool {
	return GetEnv("ENABLE_RATE_LIMITING", "true") == "true"
}

func (Security) GetLoginRatePerMinute() int {
	return 10
}

func (Security) GetLoginBurst() int {
	return 5
}
