package notestore

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/tphakala/lecturenotes/internal/errors"
)

// SimilarNote is one result of SearchSimilar.
type SimilarNote struct {
	NoteID int64
	Score  float64
}

// SaveEmbedding stores (or replaces) the retrieval vector for a note id.
func (s *Store) SaveEmbedding(noteID int64, vec []float32) error {
	embedding := Embedding{NoteID: noteID, Vec: encodeVector(vec)}
	if err := s.db.Save(&embedding).Error; err != nil {
		return errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).
			Context("note_id", noteID).Build()
	}
	return nil
}

// SearchSimilar runs a brute-force cosine similarity search against every
// stored embedding and returns up to k results, highest score first. The
// corpus here is small enough (a personal notes archive, not a web-scale
// index) that an ANN index would be premature.
func (s *Store) SearchSimilar(query []float32, k int) ([]SimilarNote, error) {
	var rows []Embedding
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, errors.New(err).Component(componentNotestore).Category(errors.CategoryDatabase).Build()
	}

	results := make([]SimilarNote, 0, len(rows))
	for _, row := range rows {
		vec := decodeVector(row.Vec)
		results = append(results, SimilarNote{NoteID: row.NoteID, Score: cosineSimilarity(query, vec)})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}
