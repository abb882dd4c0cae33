package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/actionsum/auraswitch/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

const appName = "auraswitch"

var (
	cfg    *config.Config
	logger hclog.Logger
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Switch keyboard lighting with what you are doing",
	Long: `auraswitch watches the foreground application, audio output and input
idle time, and switches G-Helper's Aura lighting mode to match:

  media player with sound   AuraBreathe
  any other sound           AuraStrobe
  otherwise                 AuraStatic

Running auraswitch without a subcommand runs the controller in the foreground.

Environment Variables:
  AURASWITCH_GHELPER_CONFIG  G-Helper config.json path
  AURASWITCH_DB_PATH         Error journal database path
  AURASWITCH_PID_FILE        PID file path
  AURASWITCH_LOG_FILE        Daemon log file path
  AURASWITCH_DEBUG           Enable debug logging`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.New()
		logger = foregroundLogger(cfg.Debug)
		return nil
	},
	RunE: runForeground,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// foregroundLogger writes to standard output; the detached daemon swaps it
// for the log file
func foregroundLogger(debug bool) hclog.Logger {
	return newLogger(os.Stdout, debug)
}

func newLogger(out io.Writer, debug bool) hclog.Logger {
	level := hclog.Info
	if debug {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   appName,
		Output: out,
		Level:  level,
	})
}
