package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/actionsum/auraswitch/internal/aura"
)

// Config holds all application configuration
type Config struct {
	// Controller loop configuration
	Controller ControllerConfig

	// G-Helper integration
	Aura AuraConfig

	// Error journal configuration
	Database DatabaseConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Debug enables DEBUG level logging
	Debug bool
}

// ControllerConfig holds the polling loop configuration
type ControllerConfig struct {
	PollInterval time.Duration // Wait between iterations
}

// AuraConfig locates the lighting application and its config file
type AuraConfig struct {
	ConfigPath  string // G-Helper config.json
	ProcessName string // Process restarted after a config change
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string // Path to SQLite database file
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
	LogFile string // Log destination of the detached daemon
}

// Default returns a Config with sensible default values
func Default() *Config {
	configPath, err := aura.DefaultConfigPath()
	if err != nil {
		configPath = ""
	}

	return &Config{
		Controller: ControllerConfig{
			PollInterval: 5 * time.Second,
		},
		Aura: AuraConfig{
			ConfigPath:  configPath,
			ProcessName: aura.DefaultProcessName,
		},
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/auraswitch/auraswitch.db
		},
		Daemon: DaemonConfig{
			PIDFile: filepath.Join(os.TempDir(), fmt.Sprintf("auraswitch-%d.pid", os.Getuid())),
			LogFile: filepath.Join(os.TempDir(), "auraswitch.log"),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Controller.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.Controller.PollInterval)
	}

	if c.Aura.ConfigPath == "" {
		return fmt.Errorf("G-Helper config path cannot be empty")
	}

	if c.Aura.ProcessName == "" {
		return fmt.Errorf("G-Helper process name cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	if c.Daemon.LogFile == "" {
		return fmt.Errorf("log file path cannot be empty")
	}

	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	dbPath := c.Database.Path
	if dbPath == "" {
		dbPath = "(default)"
	}

	return fmt.Sprintf(`Configuration:
  Controller:
    Poll Interval: %v
  Aura:
    Config Path: %s
    Process Name: %s
  Database:
    Path: %s
  Daemon:
    PID File: %s
    Log File: %s
  Debug: %v`,
		c.Controller.PollInterval,
		c.Aura.ConfigPath,
		c.Aura.ProcessName,
		dbPath,
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
		c.Debug,
	)
}
