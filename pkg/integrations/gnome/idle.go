// Package gnome reads input idle time from GNOME's Mutter compositor, which
// also works under Wayland where the X screensaver extension is blind.
package gnome

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	idleMonitorDest = "org.gnome.Mutter.IdleMonitor"
	idleMonitorPath = "/org/gnome/Mutter/IdleMonitor/Core"
	getIdletime     = "org.gnome.Mutter.IdleMonitor.GetIdletime"
)

// IdleMonitor implements activity.IdleTimeProbe over the session bus
type IdleMonitor struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewIdleMonitor connects to the session bus. The monitor is usable only if
// IsAvailable reports true.
func NewIdleMonitor() (*IdleMonitor, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &IdleMonitor{
		conn: conn,
		obj:  conn.Object(idleMonitorDest, idleMonitorPath),
	}, nil
}

// IsAvailable checks that Mutter answers an idle time query
func (m *IdleMonitor) IsAvailable() bool {
	_, err := m.idleMillis()
	return err == nil
}

// IdleSeconds returns whole seconds since the last user input
func (m *IdleMonitor) IdleSeconds() (int64, error) {
	ms, err := m.idleMillis()
	if err != nil {
		return 0, err
	}
	return int64(ms / 1000), nil
}

func (m *IdleMonitor) idleMillis() (uint64, error) {
	var ms uint64
	if err := m.obj.Call(getIdletime, 0).Store(&ms); err != nil {
		return 0, fmt.Errorf("failed to query Mutter idle time: %w", err)
	}
	return ms, nil
}

// Close closes the private bus connection
func (m *IdleMonitor) Close() error {
	return m.conn.Close()
}
