package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/actionsum/auraswitch/internal/aura"
	"github.com/actionsum/auraswitch/internal/config"
	"github.com/actionsum/auraswitch/internal/controller"
	"github.com/actionsum/auraswitch/internal/database"
	"github.com/actionsum/auraswitch/pkg/detector"
	"github.com/actionsum/auraswitch/pkg/integrations/process"
)

// journal entries older than this are pruned on startup
const journalRetention = 30 * 24 * time.Hour

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the controller in the foreground",
	RunE:  runForeground,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runForeground(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runController(ctx, cfg, logger)
}

// runController wires the probes, the G-Helper integration and the error
// journal into a controller and runs it until ctx is cancelled.
func runController(ctx context.Context, cfg *config.Config, logger hclog.Logger) error {
	probes, err := detector.New(logger.Named("detector"))
	if err != nil {
		return errors.Wrap(err, "failed to initialize activity probes")
	}
	defer probes.Close()

	opts := []controller.Option{controller.WithPollInterval(cfg.Controller.PollInterval)}

	// the journal is best-effort; the controller runs without it
	if repo, closeDB, err := openJournal(cfg, logger); err != nil {
		logger.Warn("error journal disabled", "error", err)
	} else {
		defer closeDB()
		opts = append(opts, controller.WithRecorder(repo))
	}

	writer := aura.NewConfigWriter(cfg.Aura.ConfigPath)
	restarter := aura.NewRestarter(process.NewTable(), cfg.Aura.ProcessName, logger.Named("aura"))
	ctrl := controller.New(probes, writer, restarter, logger.Named("controller"), opts...)

	logger.Debug(cfg.String())

	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func openJournal(cfg *config.Config, logger hclog.Logger) (*database.Repository, func(), error) {
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Initialize(); err != nil {
		db.Close()
		return nil, nil, err
	}

	repo := database.NewRepository(db)
	if n, err := repo.DeleteOld(time.Now().Add(-journalRetention)); err != nil {
		logger.Warn("failed to prune error journal", "error", err)
	} else if n > 0 {
		logger.Debug("pruned error journal", "deleted", n)
	}

	return repo, func() { db.Close() }, nil
}
