package hybrid

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/actionsum/auraswitch/pkg/activity"
)

// AudioProbe asks the preferred probe first and falls back to the next one
// when it errors. It only fails when every probe fails.
type AudioProbe struct {
	probes []namedProbe
	logger hclog.Logger

	lastSuccessfulMethod string
}

type namedProbe struct {
	name  string
	probe activity.AudioActivityProbe
}

func NewAudioProbe(logger hclog.Logger) *AudioProbe {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AudioProbe{logger: logger}
}

// Add appends a probe with lower priority than the ones already added
func (a *AudioProbe) Add(name string, probe activity.AudioActivityProbe) {
	a.probes = append(a.probes, namedProbe{name: name, probe: probe})
}

// Methods lists the probe names in priority order
func (a *AudioProbe) Methods() []string {
	names := make([]string, 0, len(a.probes))
	for _, p := range a.probes {
		names = append(names, p.name)
	}
	return names
}

func (a *AudioProbe) LastSuccessfulMethod() string {
	return a.lastSuccessfulMethod
}

func (a *AudioProbe) IsAudioPlaying() (bool, error) {
	if len(a.probes) == 0 {
		return false, fmt.Errorf("no audio probe available")
	}

	var errs []error
	for _, p := range a.probes {
		playing, err := p.probe.IsAudioPlaying()
		if err == nil {
			if a.lastSuccessfulMethod != p.name {
				a.logger.Debug("audio probe in use", "method", p.name)
			}
			a.lastSuccessfulMethod = p.name
			return playing, nil
		}
		a.logger.Debug("audio probe failed", "method", p.name, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
	}

	return false, fmt.Errorf("all audio probes failed: %v", errs)
}
