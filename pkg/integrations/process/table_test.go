package process

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionsum/auraswitch/internal/aura"
	"github.com/actionsum/auraswitch/pkg/utils"
)

func TestTableImplementsProcessTable(t *testing.T) {
	var _ aura.ProcessTable = (*Table)(nil)
}

func TestNameByPIDSelf(t *testing.T) {
	name, err := NameByPID(int32(os.Getpid()))
	if err != nil {
		t.Skipf("process table not readable here: %v", err)
	}

	exe, err := os.Executable()
	require.NoError(t, err)

	// linux truncates comm to 15 bytes
	want := utils.NormalizeProcessName(filepath.Base(exe))
	assert.NotEmpty(t, name)
	assert.True(t, len(want) >= len(name) && want[:len(name)] == name,
		"NameByPID() = %q, want prefix of %q", name, want)
}

func TestNameByPIDMissing(t *testing.T) {
	_, err := NameByPID(-1)
	assert.Error(t, err)
}

func TestFindByNameSelf(t *testing.T) {
	self, err := NameByPID(int32(os.Getpid()))
	if err != nil {
		t.Skipf("process table not readable here: %v", err)
	}

	procs, err := NewTable().FindByName(self)
	require.NoError(t, err)

	found := false
	for _, p := range procs {
		if p.PID() == int32(os.Getpid()) {
			found = true
			exe, err := p.Executable()
			if err == nil {
				assert.NotEmpty(t, exe)
			}
		}
	}
	assert.True(t, found, "current process not found by name %q", self)
}

func TestFindByNameNoMatch(t *testing.T) {
	procs, err := NewTable().FindByName("no-such-process-xyz")
	require.NoError(t, err)
	assert.Empty(t, procs)
}

func TestLaunchMissingExecutable(t *testing.T) {
	err := NewTable().Launch(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
