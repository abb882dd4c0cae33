package process

import (
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/actionsum/auraswitch/internal/aura"
	"github.com/actionsum/auraswitch/pkg/utils"
)

// Table implements aura.ProcessTable on top of gopsutil
type Table struct{}

func NewTable() *Table {
	return &Table{}
}

// FindByName returns the processes whose normalized name equals name.
// Processes that exit while being scanned are skipped.
func (t *Table) FindByName(name string) ([]aura.Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list processes")
	}

	want := utils.NormalizeProcessName(name)
	var matches []aura.Process
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			continue
		}
		if utils.NormalizeProcessName(pname) == want {
			matches = append(matches, &handle{proc: p})
		}
	}

	return matches, nil
}

// Launch starts path detached from this process, in its own directory
func (t *Table) Launch(path string) error {
	cmd := exec.Command(path)
	cmd.Dir = filepath.Dir(path)
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to start %s", path)
	}

	// reap the child if it exits before we do
	go cmd.Wait()
	return nil
}

// NameByPID returns the normalized executable name of a running process
func NameByPID(pid int32) (string, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return "", errors.Wrapf(err, "process %d not found", pid)
	}

	name, err := p.Name()
	if err != nil {
		return "", errors.Wrapf(err, "failed to read name of process %d", pid)
	}
	if name == "" {
		return "", errors.Errorf("process %d has no name", pid)
	}

	return utils.NormalizeProcessName(name), nil
}

type handle struct {
	proc *process.Process
}

func (h *handle) PID() int32 {
	return h.proc.Pid
}

func (h *handle) Executable() (string, error) {
	return h.proc.Exe()
}

func (h *handle) Kill() error {
	return h.proc.Kill()
}
