// Package mpris reports audio activity from MPRIS media players on the
// session bus. It is coarser than a peak meter: a paused-but-open player is
// silent, a playing one counts even when muted.
package mpris

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	busPrefix      = "org.mpris.MediaPlayer2."
	playerPath     = "/org/mpris/MediaPlayer2"
	playbackStatus = "org.mpris.MediaPlayer2.Player.PlaybackStatus"
	statusPlaying  = "Playing"
)

// Probe implements activity.AudioActivityProbe
type Probe struct {
	conn *dbus.Conn
}

func NewProbe() (*Probe, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Probe{conn: conn}, nil
}

// IsAudioPlaying reports whether any player is in the Playing state
func (p *Probe) IsAudioPlaying() (bool, error) {
	players, err := p.Players()
	if err != nil {
		return false, err
	}

	for _, name := range players {
		status, err := p.conn.Object(name, playerPath).GetProperty(playbackStatus)
		if err != nil {
			// player vanished between ListNames and the query
			continue
		}
		if s, ok := status.Value().(string); ok && s == statusPlaying {
			return true, nil
		}
	}

	return false, nil
}

// Players lists the bus names of running MPRIS players
func (p *Probe) Players() ([]string, error) {
	var names []string
	if err := p.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}
	return FilterPlayers(names), nil
}

// FilterPlayers keeps the names owned by MPRIS players
func FilterPlayers(names []string) []string {
	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, busPrefix) {
			players = append(players, name)
		}
	}
	return players
}

func (p *Probe) Close() error {
	return p.conn.Close()
}
