// Package controller runs the loop that keeps the keyboard lighting mode in
// step with what the user is doing.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/actionsum/auraswitch/internal/aura"
	"github.com/actionsum/auraswitch/internal/models"
	"github.com/actionsum/auraswitch/pkg/activity"
)

const DefaultPollInterval = 5 * time.Second

// Sampler produces one signal snapshot per call
type Sampler interface {
	Sample() (activity.Snapshot, error)
}

// ModeWriter persists a mode into the lighting application's config
type ModeWriter interface {
	SetMode(mode aura.Mode) error
}

// AppRestarter makes the lighting application reload its config
type AppRestarter interface {
	Restart() error
}

// Recorder journals failures. Implementations must not block for long.
type Recorder interface {
	Record(category models.ErrorCategory, err error) error
}

type Controller struct {
	sampler   Sampler
	writer    ModeWriter
	restarter AppRestarter
	recorder  Recorder
	logger    hclog.Logger

	pollInterval time.Duration

	mu      sync.Mutex
	current aura.Mode
}

type Option func(*Controller)

func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

func New(sampler Sampler, writer ModeWriter, restarter AppRestarter, logger hclog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	c := &Controller{
		sampler:      sampler,
		writer:       writer,
		restarter:    restarter,
		logger:       logger,
		pollInterval: DefaultPollInterval,
		current:      aura.ModeNone,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the last mode the controller applied
func (c *Controller) Current() aura.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Run ticks until ctx is cancelled, waiting the poll interval after every
// iteration regardless of its outcome.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("starting mode controller", "poll_interval", c.pollInterval)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("mode controller stopped", "mode", c.Current().String())
			return ctx.Err()
		case <-timer.C:
			if _, err := c.Tick(); err != nil {
				c.logger.Error("tick failed", "error", err)
			}
			timer.Reset(c.pollInterval)
		}
	}
}

// Tick samples once and applies the decided mode. It reports whether a
// transition happened. A panic inside the iteration is turned into an error.
func (c *Controller) Tick() (switched bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			switched = false
			err = fmt.Errorf("recovered from panic: %v", r)
			c.record(models.CategoryTick, err)
		}
	}()

	snap, err := c.sampler.Sample()
	if err != nil {
		err = errors.Wrap(err, "failed to sample activity")
		c.record(models.CategorySignal, err)
		return false, err
	}

	c.logger.Debug("sampled", "process", snap.ActiveProcess, "audio", snap.AudioPlaying, "idle", snap.IdleSeconds)

	return c.Transition(aura.DecideSnapshot(snap), snap), nil
}

// Transition applies desired unless it is already the current mode. Failures
// to write the config or restart the application are logged and journaled,
// and the mode is considered applied either way.
func (c *Controller) Transition(desired aura.Mode, snap activity.Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if desired == c.current {
		return false
	}

	c.logger.Info("mode switch",
		"from", c.current.String(),
		"to", desired.String(),
		"process", snap.ActiveProcess,
		"audio", snap.AudioPlaying,
		"idle", snap.IdleSeconds,
	)

	if err := c.writer.SetMode(desired); err != nil {
		c.logger.Error("failed to update aura config", "mode", desired.String(), "error", err)
		c.record(models.CategoryConfig, err)
	}

	if err := c.restarter.Restart(); err != nil {
		c.logger.Error("failed to restart lighting application", "error", err)
		c.record(models.CategoryRestart, err)
	}

	c.current = desired
	return true
}

func (c *Controller) record(category models.ErrorCategory, err error) {
	if c.recorder == nil {
		return
	}
	if dbErr := c.recorder.Record(category, err); dbErr != nil {
		c.logger.Warn("failed to store error in journal", "error", dbErr, "original_error", err)
	}
}
