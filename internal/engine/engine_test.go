package engine

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRecorder lets tests feed audio directly into the Engine's capture
// queue, standing in for the platform's own capture thread.
type mockRecorder struct {
	mu      sync.Mutex
	queue   []float32
	started bool
	stopped bool
}

func (m *mockRecorder) Start() error {
	m.started = true
	return nil
}

func (m *mockRecorder) Stop() {
	m.stopped = true
}

func (m *mockRecorder) GetAudioData() []float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.queue
	m.queue = nil
	return out
}

func (m *mockRecorder) Feed(samples []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, samples...)
}

func zeros(n int) []float32 { return make([]float32, n) }

func newTestEngine(t *testing.T) (*Engine, *mockRecorder) {
	t.Helper()
	dir := t.TempDir()
	e, err := New(filepath.Join(dir, "notes.db"), filepath.Join(dir, "models"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	mock := &mockRecorder{}
	e.recorder = mock
	return e, mock
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "recording", Recording.String())
	assert.Equal(t, "summarizing", Summarizing.String())
}

func TestNewSeedsDefaultFolderAndStartsIdle(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Equal(t, Idle, e.State())

	folders, err := e.GetFolders()
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "General", folders[0].Name)
}

func TestStartRecordingTransitionsStateAndStartsRecorder(t *testing.T) {
	e, mock := newTestEngine(t)

	require.NoError(t, e.StartRecording("Thermodynamics 101"))
	assert.Equal(t, Recording, e.State())
	assert.True(t, mock.started)
}

func TestTickIdleIsNoop(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Tick()
	assert.Equal(t, Idle, e.State())
	assert.EqualValues(t, 1, e.tick)
}

func TestTickRecordingExtendsSessionAudio(t *testing.T) {
	e, mock := newTestEngine(t)
	require.NoError(t, e.StartRecording("subject"))

	mock.Feed(zeros(1600))
	e.Tick()

	e.mu.Lock()
	got := len(e.sessionAudio)
	e.mu.Unlock()
	assert.Equal(t, 1600, got)
}

func TestCircularBufferNeverExceedsCapacityDuringSummarizing(t *testing.T) {
	e, mock := newTestEngine(t)
	require.NoError(t, e.StartRecording("subject"))

	e.mu.Lock()
	e.state = Summarizing
	e.mu.Unlock()

	mock.Feed(zeros(circularBufferCapacity * 2))
	e.Tick()

	e.mu.Lock()
	length := e.circularBuf.Len()
	e.mu.Unlock()
	assert.LessOrEqual(t, length, circularBufferCapacity)
}

func TestGetCurrentTranscriptRunsATick(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.StartRecording("subject"))

	_ = e.GetCurrentTranscript()
	assert.EqualValues(t, 1, e.tick)
}
