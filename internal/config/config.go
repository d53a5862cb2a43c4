package config

import (
	"time"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	BackendConfig
	SessionConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type BackendConfig interface {
	GetAPIBaseURL() string
	GetFormRelayURL() string
	GetRequestTimeout() time.Duration
}

type SessionConfig interface {
	GetIdleTimeout() time.Duration
	GetWarningLead() time.Duration
	GetSessionCookieName() string
}

type mainConfig struct {
	EnvVars
	Backend
	Session
	Security
}

func New() Config {
	// Best effort: a missing .env file just means plain environment variables
	_ = godotenv.Load()
	return mainConfig{}
}
