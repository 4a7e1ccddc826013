// Package transcript implements the rolling transcript accumulator that
// sits between ASR output and the summarization pass.
package transcript

import (
	"strings"
	"sync"
)

// lookaheadBytes extends the overflow window when searching for a
// sentence-terminating mark, so eviction rarely falls back to a hard cut.
const lookaheadBytes = 500

// Buffer is a character-bounded text accumulator with sentence-boundary
// eviction: once content exceeds maxLength, it drains a prefix ending at
// the first '.' or '\n' found within the overflow window, falling back to
// a hard cut at the overflow byte extended to the next space. This guarantees downstream
// summarization never sees a truncated leading sentence.
type Buffer struct {
	mu        sync.Mutex
	content   strings.Builder
	maxLength int
}

// NewBuffer returns an empty Buffer with the given character budget.
func NewBuffer(maxLength int) *Buffer {
	return &Buffer{maxLength: maxLength}
}

// Push appends text followed by a single space separator, then evicts a
// leading prefix if the result exceeds maxLength.
func (b *Buffer) Push(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.content.WriteString(text)
	b.content.WriteByte(' ')

	current := b.content.String()
	if len(current) <= b.maxLength {
		return
	}

	overflow := len(current) - b.maxLength
	evictThrough := findEvictionPoint(current, overflow)

	remainder := current[evictThrough:]
	remainder = strings.TrimPrefix(remainder, " ")

	b.content.Reset()
	b.content.WriteString(remainder)
}

// findEvictionPoint locates the index (exclusive) through which to evict:
// the earliest '.' or '\n' within [0, min(len, overflow+lookaheadBytes)),
// inclusive of the mark itself, or a hard cut extended to the next space
// if no sentence boundary is found, so eviction never splits a word.
func findEvictionPoint(content string, overflow int) int {
	window := overflow + lookaheadBytes
	if window > len(content) {
		window = len(content)
	}

	for i := 0; i < window; i++ {
		if content[i] == '.' || content[i] == '\n' {
			return i + 1
		}
	}

	cut := overflow
	for cut < len(content) && content[cut] != ' ' {
		cut++
	}
	return cut
}

// GetContext returns a read-only snapshot of the current buffer content.
func (b *Buffer) GetContext() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content.String()
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content.Reset()
}

// Len returns the current byte length of the buffered content.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content.Len()
}
