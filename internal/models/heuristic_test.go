package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicASRAlwaysEmpty(t *testing.T) {
	asr := NewHeuristicASR()
	text, err := asr.Transcribe([]float32{0.1, 0.2, 0.3})
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.NoError(t, asr.Close())
}

func TestHeuristicEmbedderIsDeterministicAndNormalized(t *testing.T) {
	e := NewHeuristicEmbedder()
	v1, err := e.Embed("lecture notes about thermodynamics")
	require.NoError(t, err)
	v2, err := e.Embed("lecture notes about thermodynamics")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)

	var sumSq float64
	for _, v := range v1 {
		sumSq += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-4)
}

func TestHeuristicEmbedderEmptyTextYieldsZeroVector(t *testing.T) {
	e := NewHeuristicEmbedder()
	v, err := e.Embed("")
	require.NoError(t, err)
	for _, x := range v {
		assert.Equal(t, float32(0), x)
	}
}
