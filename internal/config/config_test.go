package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5*time.Second, cfg.Controller.PollInterval)
	assert.Equal(t, "GHelper", cfg.Aura.ProcessName)
	assert.NotEmpty(t, cfg.Daemon.PIDFile)
	assert.NotEmpty(t, cfg.Daemon.LogFile)
	assert.Empty(t, cfg.Database.Path)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(EnvGHelperConfig, "/data/ghelper.json")
	t.Setenv(EnvDBPath, "/data/journal.db")
	t.Setenv(EnvPIDFile, "/run/auraswitch.pid")
	t.Setenv(EnvLogFile, "/var/log/auraswitch.log")
	t.Setenv(EnvDebug, "1")

	cfg := New()
	assert.Equal(t, "/data/ghelper.json", cfg.Aura.ConfigPath)
	assert.Equal(t, "/data/journal.db", cfg.Database.Path)
	assert.Equal(t, "/run/auraswitch.pid", cfg.Daemon.PIDFile)
	assert.Equal(t, "/var/log/auraswitch.log", cfg.Daemon.LogFile)
	assert.True(t, cfg.Debug)

	// thresholds are not configurable
	assert.Equal(t, 5*time.Second, cfg.Controller.PollInterval)
}

func TestLoadFromEnvDebugValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvDebug, tt.value)
			assert.Equal(t, tt.want, New().Debug)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Aura.ConfigPath = "/tmp/config.json"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero poll interval", func(c *Config) { c.Controller.PollInterval = 0 }},
		{"no config path", func(c *Config) { c.Aura.ConfigPath = "" }},
		{"no process name", func(c *Config) { c.Aura.ProcessName = "" }},
		{"no pid file", func(c *Config) { c.Daemon.PIDFile = "" }},
		{"no log file", func(c *Config) { c.Daemon.LogFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestString(t *testing.T) {
	cfg := Default()
	cfg.Aura.ConfigPath = "/tmp/config.json"
	s := cfg.String()
	assert.Contains(t, s, "Poll Interval: 5s")
	assert.Contains(t, s, "Config Path: /tmp/config.json")
	assert.Contains(t, s, "Path: (default)")
}
