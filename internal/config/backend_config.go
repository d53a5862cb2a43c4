package config

import "time"

type Backend struct{}

var _ BackendConfig = Backend{}

// GetAPIBaseURL returns the base URL of the college REST backend,
// including the /api path prefix.
func (Backend) GetAPIBaseURL() string {
	return GetEnv("API_BASE_URL", "http://localhost:5000/api")
}

// GetFormRelayURL returns the third-party form-to-email relay endpoint.
// Empty disables the relay; the database-backed submission still runs.
func (Backend) GetFormRelayURL() string {
	return GetEnv("FORM_RELAY_URL", "")
}

func (Backend) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}
