package x11

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"

	"github.com/actionsum/auraswitch/pkg/integrations/process"
)

// Detector reads the focused window's owner and the input idle time from the
// X server. It satisfies activity.ForegroundProcessLookup and activity.IdleTimeProbe.
type Detector struct {
	mu    sync.Mutex
	conn  *xgb.Conn
	root  xproto.Window
	atoms map[string]xproto.Atom

	hasScreensaver bool

	// nameByPID is swapped in tests
	nameByPID func(pid int32) (string, error)
}

// NewDetector connects to $DISPLAY
func NewDetector() (*Detector, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	d := &Detector{
		conn:      conn,
		root:      xproto.Setup(conn).DefaultScreen(conn).Root,
		atoms:     make(map[string]xproto.Atom),
		nameByPID: process.NameByPID,
	}

	for _, name := range []string{"_NET_ACTIVE_WINDOW", "_NET_WM_PID"} {
		reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to intern atom %s: %w", name, err)
		}
		d.atoms[name] = reply.Atom
	}

	d.hasScreensaver = screensaver.Init(conn) == nil

	return d, nil
}

// IsAvailable reports whether the window manager publishes the active window
func (d *Detector) IsAvailable() bool {
	return d.atoms["_NET_ACTIVE_WINDOW"] != xproto.AtomNone
}

// HasIdleTime reports whether the MIT-SCREEN-SAVER extension is present
func (d *Detector) HasIdleTime() bool {
	return d.hasScreensaver
}

// ActiveProcessName returns the normalized name of the process owning the
// active window
func (d *Detector) ActiveProcessName() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	window, err := d.activeWindow()
	if err != nil {
		return "", err
	}

	pid, err := d.windowPID(window)
	if err != nil {
		return "", err
	}

	return d.nameByPID(int32(pid))
}

// IdleSeconds returns the time since the last keyboard or mouse event
func (d *Detector) IdleSeconds() (int64, error) {
	if !d.hasScreensaver {
		return 0, fmt.Errorf("MIT-SCREEN-SAVER extension not available")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	reply, err := screensaver.QueryInfo(d.conn, xproto.Drawable(d.root)).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to query screensaver info: %w", err)
	}

	return int64(reply.MsSinceUserInput / 1000), nil
}

func (d *Detector) activeWindow() (xproto.Window, error) {
	data, err := d.getProperty(d.root, d.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow)
	if err != nil {
		return 0, fmt.Errorf("failed to read _NET_ACTIVE_WINDOW: %w", err)
	}
	if len(data) < 4 {
		return 0, fmt.Errorf("no active window")
	}

	window := xproto.Window(binary.LittleEndian.Uint32(data))
	if window == 0 {
		return 0, fmt.Errorf("invalid active window handle")
	}
	return window, nil
}

func (d *Detector) windowPID(window xproto.Window) (uint32, error) {
	data, err := d.getProperty(window, d.atoms["_NET_WM_PID"], xproto.AtomCardinal)
	if err != nil {
		return 0, fmt.Errorf("failed to read _NET_WM_PID of window 0x%x: %w", uint32(window), err)
	}
	if len(data) < 4 {
		return 0, fmt.Errorf("window 0x%x has no _NET_WM_PID", uint32(window))
	}

	pid := binary.LittleEndian.Uint32(data)
	if pid == 0 {
		return 0, fmt.Errorf("window 0x%x reports pid 0", uint32(window))
	}
	return pid, nil
}

func (d *Detector) getProperty(window xproto.Window, atom, atomType xproto.Atom) ([]byte, error) {
	if atom == xproto.AtomNone {
		return nil, fmt.Errorf("atom not supported by window manager")
	}
	reply, err := xproto.GetProperty(d.conn, false, window, atom, atomType, 0, 1).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

// Close releases the X connection
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
	return nil
}
