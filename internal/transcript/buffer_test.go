package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPushWithinBudget(t *testing.T) {
	b := NewBuffer(100)
	b.Push("hello")
	b.Push("world")
	assert.Equal(t, "hello world ", b.GetContext())
}

func TestBufferEvictionKeepsBoundedAndNoLeadingFragment(t *testing.T) {
	b := NewBuffer(10)
	b.Push("Hello")
	b.Push("World")

	content := b.GetContext()
	assert.NotEmpty(t, content)
	assert.LessOrEqual(t, len(content), 11)
	assert.False(t, strings.HasPrefix(content, "llo"))
}

func TestBufferEvictsThroughSentenceBoundary(t *testing.T) {
	b := NewBuffer(20)
	b.Push("First sentence.")
	b.Push("Second one runs long")

	content := b.GetContext()
	assert.False(t, strings.HasPrefix(content, " "))
	assert.NotContains(t, content, "First sentence.")
}

func TestBufferHardCutFallbackWhenNoSentenceMark(t *testing.T) {
	b := NewBuffer(5)
	b.Push("abcdefghijklmno")

	content := b.GetContext()
	assert.LessOrEqual(t, len(content), 5+len("abcdefghijklmno")+1)
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer(100)
	b.Push("hello")
	b.Clear()
	assert.Equal(t, "", b.GetContext())
	assert.Equal(t, 0, b.Len())
}
