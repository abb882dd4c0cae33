package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	for _, name := range []string{"run", "start", "stop", "status", "errors"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	cmd, _, err := rootCmd.Find([]string{"errors", "clear"})
	require.NoError(t, err)
	assert.Equal(t, "clear", cmd.Name())
}

func TestErrorsArgs(t *testing.T) {
	assert.NoError(t, errorsCmd.Args(errorsCmd, nil))
	assert.NoError(t, errorsCmd.Args(errorsCmd, []string{"week"}))
	assert.Error(t, errorsCmd.Args(errorsCmd, []string{"day", "week"}))
	assert.NotNil(t, errorsCmd.Flags().Lookup("json"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	l := newLogger(&buf, false)
	l.Debug("hidden")
	l.Info("mode switch", "from", "none", "to", "AuraStatic")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "auraswitch: mode switch")
	assert.Contains(t, out, "to=AuraStatic")

	buf.Reset()
	newLogger(&buf, true).Debug("visible")
	assert.Contains(t, buf.String(), "[DEBUG]")
}

func TestDetachAttr(t *testing.T) {
	assert.NotNil(t, detachAttr())
}

func TestForegroundLoggerWritesToStdout(t *testing.T) {
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	stdout, stderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW
	defer func() { os.Stdout, os.Stderr = stdout, stderr }()

	l := foregroundLogger(false)
	l.Info("mode switch", "to", "AuraBreathe")
	l.Error("failed to update aura config")
	require.NoError(t, outW.Close())
	require.NoError(t, errW.Close())

	out, err := io.ReadAll(outR)
	require.NoError(t, err)
	errOut, err := io.ReadAll(errR)
	require.NoError(t, err)

	assert.Contains(t, string(out), "[INFO]")
	assert.Contains(t, string(out), "auraswitch: mode switch")
	assert.Contains(t, string(out), "[ERROR]")
	assert.Empty(t, errOut)
}
