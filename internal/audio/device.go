package audio

import (
	"runtime"
	"strings"

	"github.com/gen2brain/malgo"

	"github.com/tphakala/lecturenotes/internal/errors"
)

const componentAudio = "audio"

// captureBackend selects the malgo backend for the host platform, mirroring
// the platform-by-GOOS dispatch used across the capture stack.
func captureBackend() (malgo.Backend, error) {
	switch runtime.GOOS {
	case "linux":
		return malgo.BackendAlsa, nil
	case "windows":
		return malgo.BackendWasapi, nil
	case "darwin":
		return malgo.BackendCoreaudio, nil
	default:
		return malgo.BackendNull, errors.Newf("unsupported platform for audio capture: %s", runtime.GOOS).
			Component(componentAudio).Category(errors.CategoryAudioSource).Build()
	}
}

// findCaptureDevice resolves name ("", "default", or a specific device
// name or partial match) to a concrete capture device. Returns an error if
// no capture device is available at all.
func findCaptureDevice(ctx *malgo.AllocatedContext, name string) (malgo.DeviceInfo, error) {
	devices, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return malgo.DeviceInfo{}, errors.New(err).Component(componentAudio).
			Category(errors.CategoryAudioSource).Context("operation", "enumerate_devices").Build()
	}
	if len(devices) == 0 {
		return malgo.DeviceInfo{}, errors.Newf("no capture device available").
			Component(componentAudio).Category(errors.CategoryAudioSource).Build()
	}

	if name == "" || strings.EqualFold(name, "default") {
		for _, d := range devices {
			if d.IsDefault != 0 {
				return d, nil
			}
		}
		return devices[0], nil
	}

	for _, d := range devices {
		if strings.EqualFold(d.Name(), name) {
			return d, nil
		}
	}
	lowered := strings.ToLower(name)
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Name()), lowered) {
			return d, nil
		}
	}

	return malgo.DeviceInfo{}, errors.Newf("capture device %q not found", name).
		Component(componentAudio).Category(errors.CategoryAudioSource).
		Context("device_name", name).Build()
}
