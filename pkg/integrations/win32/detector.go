//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/actionsum/auraswitch/pkg/integrations/process"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")

	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	procGetTickCount = kernel32.NewProc("GetTickCount")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

// Detector implements activity.ForegroundProcessLookup and activity.IdleTimeProbe
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// ActiveProcessName returns the normalized name of the foreground window's owner
func (d *Detector) ActiveProcessName() (string, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return "", fmt.Errorf("no foreground window")
	}

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return "", fmt.Errorf("failed to get window process id: %w", err)
	}
	if pid == 0 {
		return "", fmt.Errorf("invalid window handle 0x%x", hwnd)
	}

	return process.NameByPID(int32(pid))
}

// IdleSeconds is the tick count difference to the last input event
func (d *Detector) IdleSeconds() (int64, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	r, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if r == 0 {
		return 0, fmt.Errorf("GetLastInputInfo failed: %w", err)
	}

	now, _, _ := procGetTickCount.Call()
	return idleSeconds(uint32(now), info.dwTime), nil
}

func (d *Detector) Close() error {
	return nil
}
