package activity

import (
	"fmt"
	"io"
)

// AudioPeakThreshold is the normalized (0.0-1.0) peak level above which the
// output device counts as playing
const AudioPeakThreshold = 0.01

// Snapshot holds the signals sampled on one poll
type Snapshot struct {
	ActiveProcess string // lower-cased executable name, no extension
	AudioPlaying  bool
	IdleSeconds   int64 // seconds since last keyboard/mouse input
}

// ForegroundProcessLookup resolves the process owning the focused window
type ForegroundProcessLookup interface {
	// ActiveProcessName fails when the window handle is invalid or the owning
	// process exited between lookup and query
	ActiveProcessName() (string, error)
}

// AudioActivityProbe reports whether the default output device is playing
type AudioActivityProbe interface {
	// IsAudioPlaying fails when no output device is available
	IsAudioPlaying() (bool, error)
}

// IdleTimeProbe reports the time since the last global input event
type IdleTimeProbe interface {
	IdleSeconds() (int64, error)
}

// Probes bundles one implementation of each capability
type Probes struct {
	Foreground ForegroundProcessLookup
	Audio      AudioActivityProbe
	Idle       IdleTimeProbe

	// Backend describes the implementations in use, e.g. "x11+pulse"
	Backend string

	closers []io.Closer
}

// OnClose registers a resource released by Close
func (p *Probes) OnClose(c io.Closer) {
	p.closers = append(p.closers, c)
}

// Sample queries the process, audio and idle probes in that order.
// The first failure aborts the sample.
func (p *Probes) Sample() (Snapshot, error) {
	process, err := p.Foreground.ActiveProcessName()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get active process: %w", err)
	}

	playing, err := p.Audio.IsAudioPlaying()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to query audio activity: %w", err)
	}

	idle, err := p.Idle.IdleSeconds()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get idle time: %w", err)
	}

	return Snapshot{
		ActiveProcess: process,
		AudioPlaying:  playing,
		IdleSeconds:   idle,
	}, nil
}

// Close cleans up any resources used by the probes
func (p *Probes) Close() error {
	var first error
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	p.closers = nil
	return first
}
