package models

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/tphakala/lecturenotes/internal/conf"
)

// HeuristicASR is a no-op ASR stub used when no model artifact is
// configured; it always returns an empty transcript.
type HeuristicASR struct{}

// NewHeuristicASR returns a HeuristicASR.
func NewHeuristicASR() *HeuristicASR { return &HeuristicASR{} }

// Transcribe implements ASR.
func (*HeuristicASR) Transcribe([]float32) (string, error) { return "", nil }

// Close implements ASR.
func (*HeuristicASR) Close() error { return nil }

// HeuristicEmbedder produces a deterministic bag-of-words embedding by
// hashing each word into one of conf.EmbeddingDim buckets. It carries no
// real semantics but gives retrieval something stable to compare when no
// trained embedder is configured.
type HeuristicEmbedder struct{}

// NewHeuristicEmbedder returns a HeuristicEmbedder.
func NewHeuristicEmbedder() *HeuristicEmbedder { return &HeuristicEmbedder{} }

// Embed implements Embedder.
func (*HeuristicEmbedder) Embed(text string) ([]float32, error) {
	vec := make([]float32, conf.EmbeddingDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		vec[int(h.Sum32())%len(vec)]++
	}
	normalizeInPlace(vec)
	return vec, nil
}

// Close implements Embedder.
func (*HeuristicEmbedder) Close() error { return nil }

func normalizeInPlace(vec []float32) {
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	if sumSq == 0 {
		return
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range vec {
		vec[i] /= norm
	}
}
