package aura

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// DefaultProcessName is the process G-Helper runs as
const DefaultProcessName = "GHelper"

var ErrExecutableUnknown = errors.New("G-Helper is not running and path could not be determined")

// Process is one running instance of the external app
type Process interface {
	PID() int32
	// Executable may fail when access is denied or the process exited
	Executable() (string, error)
	Kill() error
}

// ProcessTable enumerates, and starts, OS processes
type ProcessTable interface {
	FindByName(name string) ([]Process, error)
	Launch(path string) error
}

// Restarter kills every running instance of the external app and relaunches
// it from the executable path observed before the kill
type Restarter struct {
	table  ProcessTable
	name   string
	logger hclog.Logger
	exists func(path string) bool
}

func NewRestarter(table ProcessTable, name string, logger hclog.Logger) *Restarter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Restarter{
		table:  table,
		name:   name,
		logger: logger,
		exists: fileExists,
	}
}

// Restart returns ErrExecutableUnknown when no instance yielded a path.
// Failing to read a path or to kill an instance is only logged.
func (r *Restarter) Restart() error {
	procs, err := r.table.FindByName(r.name)
	if err != nil {
		return errors.Wrapf(err, "failed to enumerate %s processes", r.name)
	}

	var path string
	for _, proc := range procs {
		// the path has to be read first, a killed process may no longer expose it
		exe, err := proc.Executable()
		if err != nil {
			r.logger.Warn("couldn't access process path", "pid", proc.PID(), "error", err)
		} else if exe != "" {
			path = exe
		}

		if err := proc.Kill(); err != nil {
			r.logger.Warn("couldn't kill process", "pid", proc.PID(), "error", err)
		}
	}

	if path == "" || !r.exists(path) {
		return ErrExecutableUnknown
	}

	if err := r.table.Launch(path); err != nil {
		return errors.Wrapf(err, "failed to restart %s", r.name)
	}

	r.logger.Info("restarted external app", "name", r.name, "path", path)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
