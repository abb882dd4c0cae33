// Package pulse meters the default PulseAudio/PipeWire output by recording a
// short window from the sink's monitor source and taking its peak.
package pulse

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/actionsum/auraswitch/pkg/activity"
)

const (
	sampleRate = 8000
	// 50ms of mono float32 samples
	windowBytes = sampleRate / 20 * 4
)

// Meter implements activity.AudioActivityProbe
type Meter struct {
	threshold float64
}

func NewMeter() *Meter {
	return &Meter{threshold: activity.AudioPeakThreshold}
}

// IsAvailable checks that pactl and parec are installed
func (m *Meter) IsAvailable() bool {
	for _, tool := range []string{"pactl", "parec"} {
		if _, err := exec.LookPath(tool); err != nil {
			return false
		}
	}
	return true
}

// IsAudioPlaying reports whether the default sink's peak exceeds the threshold
func (m *Meter) IsAudioPlaying() (bool, error) {
	peak, err := m.Peak()
	if err != nil {
		return false, err
	}
	return peak > m.threshold, nil
}

// Peak returns the instantaneous peak of the default sink on a 0.0-1.0 scale
func (m *Meter) Peak() (float64, error) {
	sink, err := DefaultSink()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command("parec",
		"--device="+sink+".monitor",
		"--raw",
		"--format=float32le",
		"--channels=1",
		"--rate="+strconv.Itoa(sampleRate),
		"--latency-msec=20",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, fmt.Errorf("failed to open parec output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start parec: %w", err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	buf := make([]byte, windowBytes)
	n, err := io.ReadFull(stdout, buf)
	if err != nil && n == 0 {
		return 0, fmt.Errorf("failed to record from %s.monitor: %w", sink, err)
	}

	return PeakFloat32LE(buf[:n]), nil
}

// DefaultSink returns the name of the default output device
func DefaultSink() (string, error) {
	if out, err := exec.Command("pactl", "get-default-sink").Output(); err == nil {
		if sink := strings.TrimSpace(string(out)); sink != "" {
			return sink, nil
		}
	}

	// older servers lack get-default-sink
	out, err := exec.Command("pactl", "info").Output()
	if err != nil {
		return "", fmt.Errorf("failed to query pulse server: %w", err)
	}

	sink := ParseDefaultSink(out)
	if sink == "" {
		return "", fmt.Errorf("no default audio output device")
	}
	return sink, nil
}

// ParseDefaultSink extracts the "Default Sink:" value from `pactl info`
func ParseDefaultSink(info []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(info))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if value, ok := strings.CutPrefix(line, "Default Sink:"); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// PeakFloat32LE returns the largest absolute sample in little-endian float32
// PCM, clamped to 1.0. A trailing partial sample is ignored.
func PeakFloat32LE(data []byte) float64 {
	var peak float64
	for i := 0; i+4 <= len(data); i += 4 {
		v := math.Abs(float64(math.Float32frombits(binary.LittleEndian.Uint32(data[i:]))))
		if math.IsNaN(v) {
			continue
		}
		if v > peak {
			peak = v
		}
	}
	return math.Min(peak, 1.0)
}
