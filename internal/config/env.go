package config

import (
	"os"
	"strconv"
)

const (
	EnvGHelperConfig = "AURASWITCH_GHELPER_CONFIG"
	EnvDBPath        = "AURASWITCH_DB_PATH"
	EnvPIDFile       = "AURASWITCH_PID_FILE"
	EnvLogFile       = "AURASWITCH_LOG_FILE"
	EnvDebug         = "AURASWITCH_DEBUG"
)

// LoadFromEnv loads configuration from environment variables.
// Only file locations and the log level can be overridden; the decision
// thresholds and poll interval are fixed.
func LoadFromEnv(cfg *Config) {
	if path := os.Getenv(EnvGHelperConfig); path != "" {
		cfg.Aura.ConfigPath = path
	}

	if dbPath := os.Getenv(EnvDBPath); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if pidFile := os.Getenv(EnvPIDFile); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	if logFile := os.Getenv(EnvLogFile); logFile != "" {
		cfg.Daemon.LogFile = logFile
	}

	if debug := os.Getenv(EnvDebug); debug != "" {
		if val, err := strconv.ParseBool(debug); err == nil {
			cfg.Debug = val
		} else {
			// any other non-empty value turns it on
			cfg.Debug = true
		}
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
