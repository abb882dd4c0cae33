//go:build windows

package detector

import (
	"github.com/hashicorp/go-hclog"

	"github.com/actionsum/auraswitch/pkg/activity"
	"github.com/actionsum/auraswitch/pkg/integrations/win32"
)

func newPlatformProbes(logger hclog.Logger) (*activity.Probes, error) {
	det := win32.NewDetector()
	probes := &activity.Probes{
		Foreground: det,
		Audio:      win32.NewMeter(),
		Idle:       det,
		Backend:    "win32+wca",
	}
	probes.OnClose(det)

	logger.Info("signal probes initialized", "backend", probes.Backend)
	return probes, nil
}
