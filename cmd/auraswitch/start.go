package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/actionsum/auraswitch/internal/daemon"
)

const daemonChildEnv = "AURASWITCH_DAEMON_CHILD"

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the controller as a background daemon",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		return errors.Wrap(err, "failed to check daemon status")
	}
	if running {
		return fmt.Errorf("daemon is already running (PID: %d)", pid)
	}

	if os.Getenv(daemonChildEnv) != "1" {
		return daemonize()
	}

	return runDaemonChild(dm)
}

func runDaemonChild(dm *daemon.Daemon) error {
	logFile, err := os.OpenFile(cfg.Daemon.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to open log file")
	}
	defer logFile.Close()

	logger = newLogger(logFile, cfg.Debug)

	if err := dm.WritePID(); err != nil {
		logger.Error("failed to write PID file", "error", err)
		return err
	}
	defer dm.RemovePID()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting auraswitch daemon", "pid", os.Getpid(), "version", version)

	if err := runController(ctx, cfg, logger); err != nil {
		logger.Error("controller exited", "error", err)
		return err
	}

	logger.Info("daemon stopped successfully")
	return nil
}

func daemonize() error {
	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "failed to locate executable")
	}

	env := append(os.Environ(), daemonChildEnv+"=1")

	procAttr := &os.ProcAttr{
		Env:   env,
		Files: []*os.File{nil, nil, nil}, // stdin, stdout, stderr to the null device
		Sys:   detachAttr(),
	}

	proc, err := os.StartProcess(exe, []string{exe, "start"}, procAttr)
	if err != nil {
		return errors.Wrap(err, "failed to start daemon process")
	}

	fmt.Printf("Daemon started successfully (PID: %d)\n", proc.Pid)
	fmt.Printf("Logs: %s\n", cfg.Daemon.LogFile)
	return proc.Release()
}
