// Package models implements exclusive-residency management of the heavy
// ASR, summarizer, and embedder inference backends, plus the shipped
// reference backends themselves.
package models

// ASR performs acoustic-to-text inference over 16 kHz mono f32 audio.
type ASR interface {
	Transcribe(samples []float32) (string, error)
	Close() error
}

// Summarizer condenses accumulated transcript context into a summary.
type Summarizer interface {
	Summarize(text string) (string, error)
	Close() error
}

// Embedder produces a fixed-dimension vector representation of text for
// similarity search.
type Embedder interface {
	Embed(text string) ([]float32, error)
	Close() error
}

// OCR recognizes text from an on-disk image. The concrete ML runtime
// behind this interface is an external-collaborator concern; NoopOCR is
// the only backend this module ships.
type OCR interface {
	RecognizeText(imagePath string) (string, error)
	Close() error
}

// NoopOCR always returns an empty result.
type NoopOCR struct{}

// RecognizeText implements OCR.
func (NoopOCR) RecognizeText(string) (string, error) { return "", nil }

// Close implements OCR.
func (NoopOCR) Close() error { return nil }
