package wayland

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionsum/auraswitch/pkg/activity"
)

func TestDetectorInterface(t *testing.T) {
	var _ activity.ForegroundProcessLookup = (*Detector)(nil)
}

func TestNewDetector(t *testing.T) {
	detector := NewDetector()
	require.NotNil(t, detector)
	assert.Contains(t, []string{CompositorSway, CompositorHyprland, CompositorUnknown}, detector.Compositor())
	t.Logf("Detected compositor: %s", detector.Compositor())
}

const swayTree = `{
  "id": 1, "type": "root", "focused": false,
  "nodes": [
    {"id": 3, "type": "output", "focused": false, "nodes": [
      {"id": 4, "type": "workspace", "focused": false,
       "nodes": [
         {"id": 10, "type": "con", "focused": false, "pid": 1200, "app_id": "foot", "nodes": []}
       ],
       "floating_nodes": [
         {"id": 11, "type": "floating_con", "focused": true, "pid": 4321, "app_id": "mpv", "nodes": []}
       ]}
    ]}
  ]
}`

func TestParseSwayTree(t *testing.T) {
	pid, err := parseSwayTree([]byte(swayTree))
	require.NoError(t, err)
	assert.Equal(t, int32(4321), pid)
}

func TestParseSwayTreeNoFocus(t *testing.T) {
	_, err := parseSwayTree([]byte(`{"focused": false, "nodes": [{"focused": false, "pid": 12}]}`))
	assert.Error(t, err)

	_, err = parseSwayTree([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseHyprlandWindow(t *testing.T) {
	pid, err := parseHyprlandWindow([]byte(`{"address": "0x55d1", "class": "firefox", "title": "x", "pid": 2222}`))
	require.NoError(t, err)
	assert.Equal(t, int32(2222), pid)

	_, err = parseHyprlandWindow([]byte("Invalid"))
	assert.Error(t, err)

	_, err = parseHyprlandWindow([]byte(`{}`))
	assert.Error(t, err)
}

func TestActiveProcessName(t *testing.T) {
	tests := []struct {
		name       string
		compositor string
		output     string
		wantCmd    string
		wantPID    int32
	}{
		{"sway", CompositorSway, swayTree, "swaymsg", 4321},
		{"hyprland", CompositorHyprland, `{"pid": 77}`, "hyprctl", 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCmd string
			var gotPID int32
			d := &Detector{
				compositor: tt.compositor,
				run: func(name string, args ...string) ([]byte, error) {
					gotCmd = name
					return []byte(tt.output), nil
				},
				nameByPID: func(pid int32) (string, error) {
					gotPID = pid
					return "mpv", nil
				},
			}

			name, err := d.ActiveProcessName()
			require.NoError(t, err)
			assert.Equal(t, "mpv", name)
			assert.Equal(t, tt.wantCmd, gotCmd)
			assert.Equal(t, tt.wantPID, gotPID)
		})
	}
}

func TestActiveProcessNameErrors(t *testing.T) {
	d := &Detector{compositor: CompositorUnknown}
	_, err := d.ActiveProcessName()
	assert.Error(t, err)
	assert.False(t, d.IsAvailable())

	d = &Detector{
		compositor: CompositorSway,
		run: func(string, ...string) ([]byte, error) {
			return nil, errors.New("IPC socket not found")
		},
	}
	_, err = d.ActiveProcessName()
	assert.ErrorContains(t, err, "swaymsg")
}
