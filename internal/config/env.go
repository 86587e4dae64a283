package config

import "os"

// Environment variables read by Env. A .env file in the working directory
// is loaded into the process environment by the command before this runs.
const (
	EnvDBPath      = "ARCADE_DB"
	EnvLogLevel    = "ARCADE_LOG_LEVEL"
	EnvMetricsAddr = "ARCADE_METRICS_ADDR"
	EnvSSHAddr     = "ARCADE_SSH_ADDR"
	EnvDifficulty  = "ARCADE_DIFFICULTY"
)

// Env holds process-level settings that flags may override.
type Env struct {
	DBPath      string
	LogLevel    string
	MetricsAddr string
	SSHAddr     string
	Difficulty  string
}

// FromEnv reads the ARCADE_* variables. Unset variables stay empty.
func FromEnv() Env {
	return Env{
		DBPath:      os.Getenv(EnvDBPath),
		LogLevel:    os.Getenv(EnvLogLevel),
		MetricsAddr: os.Getenv(EnvMetricsAddr),
		SSHAddr:     os.Getenv(EnvSSHAddr),
		Difficulty:  os.Getenv(EnvDifficulty),
	}
}

// Or returns v, or def when v is empty.
func Or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
