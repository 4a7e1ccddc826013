package notestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateChangesUploadsLocalOnly(t *testing.T) {
	local := []NoteState{{ID: 1, UpdatedAt: 100}}
	remote := []NoteState{}

	toUpload, toDownload := CalculateChanges(local, remote)
	assert.Equal(t, []int64{1}, toUpload)
	assert.Empty(t, toDownload)
}

func TestCalculateChangesDownloadsRemoteOnly(t *testing.T) {
	local := []NoteState{}
	remote := []NoteState{{ID: 2, UpdatedAt: 100}}

	toUpload, toDownload := CalculateChanges(local, remote)
	assert.Empty(t, toUpload)
	assert.Equal(t, []int64{2}, toDownload)
}

func TestCalculateChangesNewerSideWins(t *testing.T) {
	local := []NoteState{
		{ID: 1, UpdatedAt: 200}, // local newer -> upload
		{ID: 2, UpdatedAt: 50},  // remote newer -> download
		{ID: 3, UpdatedAt: 10},  // equal -> no change
	}
	remote := []NoteState{
		{ID: 1, UpdatedAt: 100},
		{ID: 2, UpdatedAt: 150},
		{ID: 3, UpdatedAt: 10},
	}

	toUpload, toDownload := CalculateChanges(local, remote)
	assert.Equal(t, []int64{1}, toUpload)
	assert.Equal(t, []int64{2}, toDownload)
}

func TestBuildSyncBlobEncodesContentAsBase64(t *testing.T) {
	notes := []NoteRaw{{ID: 1, Title: "Note", Content: []byte{0xde, 0xad, 0xbe, 0xef}, UpdatedAt: 42}}

	blob := BuildSyncBlob(notes, 1000)
	assert.Equal(t, uint32(1), blob.Version)
	assert.Equal(t, int64(1000), blob.Timestamp)
	assert.Len(t, blob.Changes, 1)
	assert.Equal(t, "3q2+7w==", blob.Changes[0].EncryptedContent)
}
