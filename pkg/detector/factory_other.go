//go:build !linux && !windows

package detector

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-hclog"

	"github.com/actionsum/auraswitch/pkg/activity"
)

func newPlatformProbes(logger hclog.Logger) (*activity.Probes, error) {
	return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
}
