//go:build windows

package win32

import (
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"

	"github.com/actionsum/auraswitch/pkg/activity"
)

// sFalse is returned by CoInitializeEx when COM is already initialized on the thread
const sFalse = 0x00000001

// Meter reads the peak value of the default multimedia render endpoint
type Meter struct {
	threshold float64
}

func NewMeter() *Meter {
	return &Meter{threshold: activity.AudioPeakThreshold}
}

func (m *Meter) IsAudioPlaying() (bool, error) {
	peak, err := m.Peak()
	if err != nil {
		return false, err
	}
	return float64(peak) > m.threshold, nil
}

// Peak returns the endpoint's instantaneous peak on a 0.0-1.0 scale
func (m *Meter) Peak() (float32, error) {
	// COM state is per OS thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != sFalse {
			return 0, fmt.Errorf("failed to initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	var enumerator *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &enumerator); err != nil {
		return 0, fmt.Errorf("failed to create device enumerator: %w", err)
	}
	defer enumerator.Release()

	var device *wca.IMMDevice
	if err := enumerator.GetDefaultAudioEndpoint(wca.ERender, wca.EMultimedia, &device); err != nil {
		return 0, fmt.Errorf("no default audio output device: %w", err)
	}
	defer device.Release()

	var meter *wca.IAudioMeterInformation
	if err := device.Activate(wca.IID_IAudioMeterInformation, wca.CLSCTX_ALL, nil, &meter); err != nil {
		return 0, fmt.Errorf("failed to activate peak meter: %w", err)
	}
	defer meter.Release()

	var peak float32
	if err := meter.GetPeakValue(&peak); err != nil {
		return 0, fmt.Errorf("failed to read peak value: %w", err)
	}
	return peak, nil
}
