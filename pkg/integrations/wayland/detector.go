// Package wayland resolves the focused window's process on wlroots-style
// compositors that expose their window tree over IPC (sway, Hyprland).
package wayland

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/actionsum/auraswitch/pkg/integrations/process"
)

const (
	CompositorSway     = "sway"
	CompositorHyprland = "hyprland"
	CompositorUnknown  = "unknown"
)

// Detector implements activity.ForegroundProcessLookup for Wayland
type Detector struct {
	compositor string

	// swapped in tests
	run       func(name string, args ...string) ([]byte, error)
	nameByPID func(pid int32) (string, error)
}

// NewDetector creates a new Wayland detector
func NewDetector() *Detector {
	d := &Detector{
		run:       runCommand,
		nameByPID: process.NameByPID,
	}
	d.compositor = detectCompositor()
	return d
}

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// detectCompositor picks the compositor whose IPC client is installed and
// answers
func detectCompositor() string {
	if commandExists("swaymsg") && exec.Command("swaymsg", "-t", "get_version").Run() == nil {
		return CompositorSway
	}
	if commandExists("hyprctl") && exec.Command("hyprctl", "version").Run() == nil {
		return CompositorHyprland
	}
	return CompositorUnknown
}

// IsAvailable checks if a supported compositor was found
func (d *Detector) IsAvailable() bool {
	return d.compositor != CompositorUnknown
}

func (d *Detector) Compositor() string {
	return d.compositor
}

// ActiveProcessName returns the normalized name of the focused window's process
func (d *Detector) ActiveProcessName() (string, error) {
	var (
		pid int32
		err error
	)

	switch d.compositor {
	case CompositorSway:
		pid, err = d.focusedPIDSway()
	case CompositorHyprland:
		pid, err = d.focusedPIDHyprland()
	default:
		return "", fmt.Errorf("unsupported wayland compositor: %s", d.compositor)
	}
	if err != nil {
		return "", err
	}

	return d.nameByPID(pid)
}

func (d *Detector) focusedPIDSway() (int32, error) {
	output, err := d.run("swaymsg", "-t", "get_tree")
	if err != nil {
		return 0, fmt.Errorf("failed to execute swaymsg: %w", err)
	}
	return parseSwayTree(output)
}

func (d *Detector) focusedPIDHyprland() (int32, error) {
	output, err := d.run("hyprctl", "activewindow", "-j")
	if err != nil {
		return 0, fmt.Errorf("failed to execute hyprctl: %w", err)
	}
	return parseHyprlandWindow(output)
}

type swayNode struct {
	Focused       bool       `json:"focused"`
	PID           int32      `json:"pid"`
	Nodes         []swayNode `json:"nodes"`
	FloatingNodes []swayNode `json:"floating_nodes"`
}

// parseSwayTree returns the pid of the focused leaf in a get_tree reply
func parseSwayTree(data []byte) (int32, error) {
	var root swayNode
	if err := json.Unmarshal(data, &root); err != nil {
		return 0, fmt.Errorf("failed to parse sway tree: %w", err)
	}

	if node := findFocused(&root); node != nil && node.PID > 0 {
		return node.PID, nil
	}
	return 0, fmt.Errorf("no focused window")
}

func findFocused(n *swayNode) *swayNode {
	if n.Focused {
		return n
	}
	for i := range n.Nodes {
		if f := findFocused(&n.Nodes[i]); f != nil {
			return f
		}
	}
	for i := range n.FloatingNodes {
		if f := findFocused(&n.FloatingNodes[i]); f != nil {
			return f
		}
	}
	return nil
}

// parseHyprlandWindow returns the pid from `hyprctl activewindow -j`
func parseHyprlandWindow(data []byte) (int32, error) {
	var win struct {
		PID int32 `json:"pid"`
	}
	if err := json.Unmarshal(data, &win); err != nil {
		// hyprctl prints "Invalid" with no focused window
		return 0, fmt.Errorf("no focused window")
	}
	if win.PID <= 0 {
		return 0, fmt.Errorf("no focused window")
	}
	return win.PID, nil
}
