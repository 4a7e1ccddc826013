package notestore

import "encoding/base64"

// NoteState is a lightweight fingerprint of a note used for delta-sync
// comparison: id and last-modified timestamp are enough to decide a
// direction without transporting content.
type NoteState struct {
	ID        int64
	UpdatedAt int64
}

// CalculateChanges compares local and remote note states and returns the
// ids that need uploading (local is newer, or remote doesn't have it yet)
// and the ids that need downloading (remote is newer, or local doesn't
// have it yet). Equal timestamps are treated as already in sync.
func CalculateChanges(local, remote []NoteState) (toUpload, toDownload []int64) {
	remoteByID := make(map[int64]NoteState, len(remote))
	for _, r := range remote {
		remoteByID[r.ID] = r
	}

	localByID := make(map[int64]bool, len(local))
	for _, l := range local {
		localByID[l.ID] = true
		r, ok := remoteByID[l.ID]
		switch {
		case !ok:
			toUpload = append(toUpload, l.ID)
		case l.UpdatedAt > r.UpdatedAt:
			toUpload = append(toUpload, l.ID)
		case r.UpdatedAt > l.UpdatedAt:
			toDownload = append(toDownload, l.ID)
		}
	}

	for _, r := range remote {
		if !localByID[r.ID] {
			toDownload = append(toDownload, r.ID)
		}
	}
	return toUpload, toDownload
}

// SyncChange is one entry in a delta-sync blob: a note's still-encrypted
// content, base64'd for JSON transport.
type SyncChange struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	EncryptedContent string `json:"encrypted_content"`
	UpdatedAt        int64  `json:"updated_at"`
}

// SyncBlob is the versioned delta-sync wire format: a timestamped batch
// of changed notes, ready to ship to a remote peer.
type SyncBlob struct {
	Version   uint32       `json:"version"`
	Timestamp int64        `json:"timestamp"`
	Changes   []SyncChange `json:"changes"`
}

const syncBlobVersion = 1

// BuildSyncBlob encodes raw (still-encrypted) notes into the versioned
// delta-sync wire format without ever touching plaintext.
func BuildSyncBlob(notes []NoteRaw, timestamp int64) SyncBlob {
	changes := make([]SyncChange, len(notes))
	for i, n := range notes {
		changes[i] = SyncChange{
			ID:               n.ID,
			Title:            n.Title,
			EncryptedContent: base64.StdEncoding.EncodeToString(n.Content),
			UpdatedAt:        n.UpdatedAt,
		}
	}
	return SyncBlob{Version: syncBlobVersion, Timestamp: timestamp, Changes: changes}
}
