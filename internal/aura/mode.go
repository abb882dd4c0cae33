// Package aura decides which G-Helper lighting mode fits the current activity
// and applies it by rewriting G-Helper's config and restarting it.
package aura

import (
	"strings"

	"github.com/actionsum/auraswitch/pkg/activity"
)

// Mode is the lighting effect name written to G-Helper's aura_mode key
type Mode string

const (
	ModeNone    Mode = "" // nothing applied yet
	ModeStatic  Mode = "AuraStatic"
	ModeBreathe Mode = "AuraBreathe"
	ModeStrobe  Mode = "AuraStrobe"
)

const (
	// IdleThresholdSeconds is the idle time after which the user counts as away
	IdleThresholdSeconds = 600

	// AnimatedSpeed is the aura_speed written for non-static modes
	// (0 = stopped, 1 = slow, 2 = medium, 3 = fast)
	AnimatedSpeed = 2
)

// mediaPlayers are matched as substrings of the foreground process name
var mediaPlayers = []string{"vlc", "chrome", "mpv", "potplayer"}

func (m Mode) String() string {
	if m == ModeNone {
		return "none"
	}
	return string(m)
}

// IsStatic reports whether the mode leaves aura_speed untouched
func (m Mode) IsStatic() bool {
	return m == ModeStatic
}

// Decide maps the sampled signals to a mode. First match wins:
// media player with audio, any audio, idle, fallback.
func Decide(process string, audioPlaying bool, idleSeconds int64) Mode {
	if audioPlaying {
		if isMediaPlayer(process) {
			return ModeBreathe
		}
		return ModeStrobe
	}

	if idleSeconds > IdleThresholdSeconds {
		return ModeStatic
	}

	// not playing and not idle collapses onto the idle mode
	return ModeStatic
}

// DecideSnapshot is Decide over a sampled snapshot
func DecideSnapshot(s activity.Snapshot) Mode {
	return Decide(s.ActiveProcess, s.AudioPlaying, s.IdleSeconds)
}

func isMediaPlayer(process string) bool {
	process = strings.ToLower(process)
	for _, player := range mediaPlayers {
		if strings.Contains(process, player) {
			return true
		}
	}
	return false
}
