package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResamplerBypassWhenRatesMatch(t *testing.T) {
	r := NewResampler(16000, 16000)
	chunk := make([]float32, InputBlockFrames)
	for i := range chunk {
		chunk[i] = float32(math.Sin(float64(i)))
	}

	out := r.Process(chunk)
	require.Len(t, out, len(chunk))
	assert.Equal(t, chunk, out)
}

func TestResamplerInputFramesNextIsFixed(t *testing.T) {
	r := NewResampler(48000, 16000)
	assert.Equal(t, InputBlockFrames, r.InputFramesNext())
}

func TestResamplerDownsamplesToExpectedLength(t *testing.T) {
	r := NewResampler(48000, 16000)
	chunk := make([]float32, InputBlockFrames)
	for i := range chunk {
		chunk[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 48000))
	}

	out := r.Process(chunk)
	wantLen := int(math.Ceil(float64(len(chunk)) / 3))
	assert.Equal(t, wantLen, len(out))
}

func TestResamplerPreservesLowFrequencyTone(t *testing.T) {
	const inputHz, outputHz, freq = 48000, 16000, 220.0
	r := NewResampler(inputHz, outputHz)
	chunk := make([]float32, InputBlockFrames)
	for i := range chunk {
		chunk[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / inputHz))
	}

	out := r.Process(chunk)
	require.NotEmpty(t, out)

	var maxAbs float32
	for _, v := range out {
		if abs := float32(math.Abs(float64(v))); abs > maxAbs {
			maxAbs = abs
		}
	}
	assert.Greater(t, maxAbs, float32(0.3), "resampled tone should retain meaningful amplitude")
}
