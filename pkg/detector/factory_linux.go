//go:build linux

package detector

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/actionsum/auraswitch/pkg/activity"
	"github.com/actionsum/auraswitch/pkg/integrations/gnome"
	"github.com/actionsum/auraswitch/pkg/integrations/hybrid"
	"github.com/actionsum/auraswitch/pkg/integrations/mpris"
	"github.com/actionsum/auraswitch/pkg/integrations/pulse"
	"github.com/actionsum/auraswitch/pkg/integrations/wayland"
	"github.com/actionsum/auraswitch/pkg/integrations/x11"
)

// newPlatformProbes uses the compositor IPC (sway, Hyprland) or X11/XWayland
// for the foreground window, Mutter or the X screensaver extension for idle
// time, and the pulse peak meter with an MPRIS fallback for audio.
func newPlatformProbes(logger hclog.Logger) (*activity.Probes, error) {
	probes := &activity.Probes{}
	backend := []string{}
	onWayland := DetectDisplayServer() == "wayland"

	xdet, err := x11.NewDetector()
	if err != nil {
		logger.Debug("X server unavailable", "error", err)
		xdet = nil
	} else {
		probes.OnClose(xdet)
	}

	if onWayland {
		if wdet := wayland.NewDetector(); wdet.IsAvailable() {
			probes.Foreground = wdet
			backend = append(backend, wdet.Compositor())
		}
	}
	if probes.Foreground == nil && xdet != nil && xdet.IsAvailable() {
		probes.Foreground = xdet
		backend = append(backend, "x11")
	}
	if probes.Foreground == nil {
		probes.Close()
		return nil, fmt.Errorf("no foreground window source: need sway/Hyprland IPC or an X window manager publishing _NET_ACTIVE_WINDOW")
	}

	if onWayland {
		if mon, err := gnome.NewIdleMonitor(); err == nil {
			if mon.IsAvailable() {
				probes.Idle = mon
				probes.OnClose(mon)
				backend = append(backend, "mutter-idle")
			} else {
				mon.Close()
			}
		} else {
			logger.Debug("session bus unavailable for idle monitor", "error", err)
		}
	}
	if probes.Idle == nil {
		if xdet == nil || !xdet.HasIdleTime() {
			probes.Close()
			return nil, fmt.Errorf("no idle time source: MIT-SCREEN-SAVER missing and Mutter unavailable")
		}
		probes.Idle = xdet
	}

	audio := hybrid.NewAudioProbe(logger.Named("audio"))
	if meter := pulse.NewMeter(); meter.IsAvailable() {
		audio.Add("pulse", meter)
	}
	if mp, err := mpris.NewProbe(); err == nil {
		audio.Add("mpris", mp)
		probes.OnClose(mp)
	} else {
		logger.Debug("session bus unavailable for MPRIS", "error", err)
	}
	if len(audio.Methods()) == 0 {
		probes.Close()
		return nil, fmt.Errorf("no audio probe available: install pactl/parec or run a session bus")
	}
	probes.Audio = audio
	backend = append(backend, strings.Join(audio.Methods(), "|"))

	probes.Backend = strings.Join(backend, "+")
	logger.Info("signal probes initialized", "backend", probes.Backend)
	return probes, nil
}
