package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1 (§8.1): swap preserves audio captured while Summarizing.
func TestSwapPreservesAudioCapturedDuringSummarizing(t *testing.T) {
	e, mock := newTestEngine(t)
	require.NoError(t, e.StartRecording("subject"))

	mock.Feed(zeros(10 * 16000))
	e.Tick()

	mock.Feed(zeros(5 * 16000))

	summary, err := e.StopRecordingAndSummarize(nil)
	require.NoError(t, err)
	assert.Equal(t, Recording, e.State())
	assert.NotNil(t, summary)

	e.mu.Lock()
	circularLen := e.circularBuf.Len()
	e.mu.Unlock()
	assert.Equal(t, 5*16000, circularLen, "audio captured during the swap should land in the circular buffer")

	mock.Feed(nil)
	e.Tick()

	e.mu.Lock()
	afterTickLen := e.circularBuf.Len()
	e.mu.Unlock()
	assert.Zero(t, afterTickLen, "the next Recording tick should drain the circular buffer through ASR")
}

func TestSwapRestoresRecordingEvenWithNoTranscript(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.StartRecording("subject"))

	summary, err := e.StopRecordingAndSummarize(nil)
	require.NoError(t, err)
	assert.Equal(t, "", summary)
	assert.Equal(t, Recording, e.State())
}

func TestSwapAppendsToExistingNote(t *testing.T) {
	e, _ := newTestEngine(t)
	id, err := e.AddNote("Existing", "first paragraph", nil)
	require.NoError(t, err)

	require.NoError(t, e.StartRecording("subject"))
	_, err = e.StopRecordingAndSummarize(&id)
	require.NoError(t, err)

	note, err := e.GetNote(id)
	require.NoError(t, err)
	assert.Contains(t, note.Content, "first paragraph")
}

func TestSwapCreatesNewNoteWhenNoAppendTarget(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.StartRecording("subject"))

	folders, err := e.GetFolders()
	require.NoError(t, err)
	e.SetCurrentFolder(&folders[0].ID)

	_, err = e.StopRecordingAndSummarize(nil)
	require.NoError(t, err)

	notes, err := e.GetNotesByFolder(folders[0].ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

// Scenario 5 (§8.5): RAG threshold — only a note above the 0.4 cosine
// relevance threshold is assembled into the context block.
func TestBuildContextBlockRespectsRelevanceThreshold(t *testing.T) {
	e, _ := newTestEngine(t)

	relevantID, err := e.AddNote("Relevant", "covers the same material", nil)
	require.NoError(t, err)
	irrelevantID, err := e.AddNote("Irrelevant", "unrelated content", nil)
	require.NoError(t, err)

	require.NoError(t, e.store.SaveEmbedding(relevantID, unitVectorWithCosineForTest(0.6)))
	require.NoError(t, e.store.SaveEmbedding(irrelevantID, unitVectorWithCosineForTest(0.3)))

	block := e.buildContextBlock([]float32{1, 0})
	assert.Contains(t, block, "Relevant")
	assert.NotContains(t, block, "Irrelevant")
}

func unitVectorWithCosineForTest(cos float64) []float32 {
	sin := sqrtOneMinusSquareForTest(cos)
	return []float32{float32(cos), float32(sin)}
}

func sqrtOneMinusSquareForTest(cos float64) float64 {
	v := 1 - cos*cos
	if v < 0 {
		v = 0
	}
	guess := v
	for i := 0; i < 30; i++ {
		if guess == 0 {
			break
		}
		guess = 0.5 * (guess + v/guess)
	}
	return guess
}
