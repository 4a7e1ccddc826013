package hostbridge

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetEngine ensures each test starts from an uninitialized singleton and
// tears down whatever it initializes, so package-level state doesn't leak
// between tests.
func resetEngine(t *testing.T) {
	t.Helper()
	mu.Lock()
	if eng != nil {
		_ = eng.Close()
		eng = nil
	}
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		if eng != nil {
			_ = eng.Close()
			eng = nil
		}
		mu.Unlock()
	})
}

func TestOperationsFailBeforeInitApp(t *testing.T) {
	resetEngine(t)

	err := StartRecording("subject")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Engine not initialized")

	_, err = GetFolders()
	require.Error(t, err)
}

func TestInitAppThenStartRecordingSucceeds(t *testing.T) {
	resetEngine(t)
	dir := t.TempDir()

	require.NoError(t, InitApp(filepath.Join(dir, "notes.db"), filepath.Join(dir, "models")))
	require.NoError(t, StartRecording("Linear Algebra"))

	folders, err := GetFolders()
	require.NoError(t, err)
	require.Len(t, folders, 1)

	id, err := AddNote("Quick note", "body text", &folders[0].ID)
	require.NoError(t, err)

	note, err := GetNote(id)
	require.NoError(t, err)
	assert.Equal(t, "body text", note.Content)
}

func TestInitAppTwiceClosesThePreviousEngine(t *testing.T) {
	resetEngine(t)
	dir := t.TempDir()

	require.NoError(t, InitApp(filepath.Join(dir, "notes.db"), filepath.Join(dir, "models")))
	require.NoError(t, InitApp(filepath.Join(dir, "notes2.db"), filepath.Join(dir, "models")))

	folders, err := GetFolders()
	require.NoError(t, err)
	require.Len(t, folders, 1)
}

func TestShutdownAppMakesSubsequentCallsFail(t *testing.T) {
	resetEngine(t)
	dir := t.TempDir()

	require.NoError(t, InitApp(filepath.Join(dir, "notes.db"), filepath.Join(dir, "models")))
	require.NoError(t, ShutdownApp())

	_, err := GetFolders()
	require.Error(t, err)
}
