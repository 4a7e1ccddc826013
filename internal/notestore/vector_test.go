package notestore

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSimilarReturnsHighestScoreFirst(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.SaveEmbedding(1, []float32{1, 0, 0}))
	require.NoError(t, store.SaveEmbedding(2, []float32{0, 1, 0}))
	require.NoError(t, store.SaveEmbedding(3, []float32{0.9, 0.1, 0}))

	results, err := store.SearchSimilar([]float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].NoteID)
	assert.Equal(t, int64(3), results[1].NoteID)
}

// unitVectorWithCosine builds a 2D unit vector whose dot product with
// (1, 0) equals cos, for exercising a chosen similarity score exactly.
func unitVectorWithCosine(cos float64) []float32 {
	sin := math.Sqrt(1 - cos*cos)
	return []float32{float32(cos), float32(sin)}
}

func TestSearchSimilarRespectsRelevanceThresholdBoundary(t *testing.T) {
	// Mirrors the RAG retrieval scenario: a note at cosine similarity 0.6
	// should be considered a relevant match, one at 0.3 should not.
	store := openTestStore(t)

	require.NoError(t, store.SaveEmbedding(1, unitVectorWithCosine(0.6)))
	require.NoError(t, store.SaveEmbedding(2, unitVectorWithCosine(0.3)))

	results, err := store.SearchSimilar([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	const relevanceThreshold = 0.4
	var aboveThreshold []int64
	for _, r := range results {
		if r.Score > relevanceThreshold {
			aboveThreshold = append(aboveThreshold, r.NoteID)
		}
	}
	assert.Equal(t, []int64{1}, aboveThreshold)
}

func TestCosineSimilarityMismatchedDimensionsScoresZero(t *testing.T) {
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
}

func TestEncodeDecodeVectorRoundTrips(t *testing.T) {
	original := []float32{0.1, -0.2, 3.5, 0}
	decoded := decodeVector(encodeVector(original))
	assert.Equal(t, original, decoded)
}
