package audio

import (
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/lecturenotes/internal/conf"
	"github.com/tphakala/lecturenotes/internal/errors"
)

// WriteWAV encodes mono f32 samples as 16-bit PCM WAV at conf.SampleRate,
// the session-audio attachment format: i16 = round(f32 * 32767), clamped.
func WriteWAV(path string, samples []float32) error {
	f, err := os.Create(path) //nolint:gosec // path is produced by the engine, not user-controlled
	if err != nil {
		return errors.New(err).Component(componentAudio).Category(errors.CategoryFileIO).
			Context("path", path).Build()
	}
	defer f.Close()

	enc := wav.NewEncoder(f, conf.SampleRate, conf.BitDepth, conf.NumChannels, 1)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: conf.NumChannels,
			SampleRate:  conf.SampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: conf.BitDepth,
	}
	for i, s := range samples {
		buf.Data[i] = floatToPCM16(s)
	}

	if err := enc.Write(buf); err != nil {
		return errors.New(err).Component(componentAudio).Category(errors.CategoryFileIO).
			Context("path", path).Build()
	}
	if err := enc.Close(); err != nil {
		return errors.New(err).Component(componentAudio).Category(errors.CategoryFileIO).
			Context("path", path).Build()
	}
	return nil
}

// floatToPCM16 converts one normalized f32 sample to a 16-bit signed PCM
// value, clamped to the representable range.
func floatToPCM16(s float32) int {
	v := math.Round(float64(s) * 32767)
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int(v)
	}
}
