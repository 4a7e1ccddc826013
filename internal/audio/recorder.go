package audio

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"

	"github.com/tphakala/lecturenotes/internal/conf"
	"github.com/tphakala/lecturenotes/internal/errors"
	"github.com/tphakala/lecturenotes/internal/logging"
)

// RecorderConfig configures the capture device a Recorder opens.
type RecorderConfig struct {
	DeviceName   string // "" or "default" selects the system default device
	BufferFrames uint32 // malgo capture period size in frames; 0 uses malgo's default
}

// Recorder owns the platform capture device and feeds 16 kHz mono f32
// samples into a mutex-guarded producer queue. The capture callback runs
// on a platform-owned thread; the queue is the sole synchronization point
// with the Engine's tick loop.
type Recorder struct {
	config RecorderConfig
	logger *slog.Logger

	ctx    *malgo.AllocatedContext
	device *malgo.Device

	mu    sync.Mutex
	queue []float32

	resampler  *Resampler
	resampAcc  []float32
	actualRate uint32

	running atomic.Bool
}

// NewRecorder constructs a Recorder that has not yet opened a device.
func NewRecorder(config RecorderConfig) *Recorder {
	return &Recorder{
		config: config,
		logger: logging.ForService("audio"),
	}
}

// Start opens the configured capture device at its native rate and begins
// feeding resampled samples into the producer queue. Returns an error if
// no input device is available.
func (r *Recorder) Start() error {
	if r.running.Load() {
		return nil
	}

	backend, err := captureBackend()
	if err != nil {
		return err
	}

	ctx, err := malgo.InitContext([]malgo.Backend{backend}, malgo.ContextConfig{}, func(string) {})
	if err != nil {
		return errors.New(err).Component(componentAudio).Category(errors.CategoryAudioSource).
			Context("operation", "init_context").Build()
	}

	deviceInfo, err := findCaptureDevice(ctx, r.config.DeviceName)
	if err != nil {
		_ = ctx.Uninit()
		return err
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = conf.NumChannels
	deviceConfig.Capture.DeviceID = deviceInfo.ID.Pointer()
	deviceConfig.Alsa.NoMMap = 1
	if r.config.BufferFrames > 0 {
		deviceConfig.PeriodSizeInFrames = r.config.BufferFrames
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: r.onAudioData,
	})
	if err != nil {
		_ = ctx.Uninit()
		return errors.New(err).Component(componentAudio).Category(errors.CategoryAudioSource).
			Context("operation", "init_device").Build()
	}

	nativeRate := device.SampleRate()
	if nativeRate == 0 {
		nativeRate = conf.SampleRate
	}
	r.actualRate = nativeRate
	r.resampler = NewResampler(int(nativeRate), conf.SampleRate)
	r.resampAcc = nil

	if err := device.Start(); err != nil {
		_ = device.Uninit()
		_ = ctx.Uninit()
		return errors.New(err).Component(componentAudio).Category(errors.CategoryAudioSource).
			Context("operation", "device_start").Build()
	}

	r.ctx = ctx
	r.device = device
	r.running.Store(true)
	r.logger.Info("recorder started", "native_rate", nativeRate, "device", r.config.DeviceName)
	return nil
}

// Stop drops the stream handle. The platform guarantees the capture
// callback will not fire again once the device is uninitialized.
func (r *Recorder) Stop() {
	if !r.running.CompareAndSwap(true, false) {
		return
	}
	if r.device != nil {
		_ = r.device.Stop()
		r.device.Uninit()
		r.device = nil
	}
	if r.ctx != nil {
		_ = r.ctx.Uninit()
		r.ctx = nil
	}
	r.logger.Info("recorder stopped")
}

// GetAudioData atomically swaps the queue contents for an empty slice and
// returns the drained samples.
func (r *Recorder) GetAudioData() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.queue
	r.queue = nil
	return out
}

// onAudioData is invoked by malgo on its own capture thread for every
// delivered period of input frames.
func (r *Recorder) onAudioData(_ []byte, input []byte, frameCount uint32) {
	samples := decodeS16Mono(input, frameCount)
	r.logger.Debug("capture frame", "frames", frameCount, "rms", computeRMS(samples))

	var resampled []float32
	if r.actualRate == conf.SampleRate {
		resampled = samples
	} else {
		r.resampAcc = append(r.resampAcc, samples...)
		blockSize := r.resampler.InputFramesNext()
		for len(r.resampAcc) >= blockSize {
			block := r.resampAcc[:blockSize]
			resampled = append(resampled, r.resampler.Process(block)...)
			r.resampAcc = r.resampAcc[blockSize:]
		}
	}
	if len(resampled) == 0 {
		return
	}

	r.mu.Lock()
	r.queue = append(r.queue, resampled...)
	r.mu.Unlock()
}

// decodeS16Mono converts a little-endian 16-bit PCM byte slice into
// normalized f32 samples in [-1, 1].
func decodeS16Mono(input []byte, frameCount uint32) []float32 {
	out := make([]float32, 0, frameCount)
	for i := 0; i+1 < len(input); i += 2 {
		v := int16(uint16(input[i]) | uint16(input[i+1])<<8)
		out = append(out, float32(v)/32768.0)
	}
	return out
}

// computeRMS is the diagnostic root-mean-square level of a sample block.
func computeRMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
