package detector

import (
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/actionsum/auraswitch/pkg/activity"
)

// New builds the signal probes for the current platform
func New(logger hclog.Logger) (*activity.Probes, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return newPlatformProbes(logger)
}

func DetectDisplayServer() string {
	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}
