package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/actionsum/auraswitch/internal/aura"
	"github.com/actionsum/auraswitch/internal/daemon"
	"github.com/actionsum/auraswitch/internal/database"
	"github.com/actionsum/auraswitch/pkg/detector"
	"github.com/actionsum/auraswitch/pkg/utils"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status, current signals and the mode they map to",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		return errors.Wrap(err, "failed to check daemon status")
	}

	if running {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
		fmt.Printf("Poll Interval: %v\n", cfg.Controller.PollInterval)
		fmt.Printf("Log File: %s\n", cfg.Daemon.LogFile)
	} else {
		fmt.Println("Status: Not running")
	}

	printLastError()

	writer := aura.NewConfigWriter(cfg.Aura.ConfigPath)
	fmt.Printf("\nG-Helper:\n")
	fmt.Printf("  Config: %s\n", writer.Path())
	if mode, err := writer.CurrentMode(); err != nil {
		fmt.Printf("  Mode: unknown (%v)\n", err)
	} else {
		fmt.Printf("  Mode: %s\n", mode)
	}

	// Still sample the signals when the daemon is not running
	probes, err := detector.New(logger.Named("detector"))
	if err != nil {
		fmt.Printf("\nCould not initialize activity probes: %v\n", err)
		return nil
	}
	defer probes.Close()

	snap, err := probes.Sample()
	if err != nil {
		fmt.Printf("\nCould not sample activity: %v\n", err)
		return nil
	}

	fmt.Printf("\nActivity (%s):\n", probes.Backend)
	fmt.Printf("  Process: %s\n", snap.ActiveProcess)
	fmt.Printf("  Audio Playing: %v\n", snap.AudioPlaying)
	fmt.Printf("  Idle Time: %s\n", utils.FormatRoundedUnit(snap.IdleSeconds))
	fmt.Printf("  Decided Mode: %s\n", aura.DecideSnapshot(snap))

	return nil
}

// printLastError shows the newest journal entry without creating a journal
func printLastError() {
	path := cfg.Database.Path
	if path == "" {
		var err error
		if path, err = database.GetDefaultDBPath(); err != nil {
			return
		}
	}
	if _, err := os.Stat(path); err != nil {
		return
	}

	db, err := database.Connect(path)
	if err != nil {
		return
	}
	defer db.Close()

	latest, err := database.NewRepository(db).GetLatest()
	if err != nil || latest == nil {
		return
	}
	fmt.Printf("Last Error: %s [%s] %s\n", humanize.Time(latest.Timestamp), latest.Category, latest.ErrorMsg)
}
