package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractiveSummarizerEmptyInput(t *testing.T) {
	s := NewExtractiveSummarizer()
	out, err := s.Summarize("")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExtractiveSummarizerKeepsKeywordSentences(t *testing.T) {
	s := NewExtractiveSummarizer()
	text := "This is a filler sentence about nothing much. " +
		"This is the important conclusion of the lecture. " +
		"Another filler sentence follows here too."

	out, err := s.Summarize(text)
	require.NoError(t, err)
	assert.Contains(t, out, "important conclusion")
}

func TestExtractiveSummarizerFallsBackToFirstSentences(t *testing.T) {
	s := NewExtractiveSummarizer()
	text := "Short one. Another short sentence here. A third sentence follows."
	out, err := s.Summarize(text)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.LessOrEqual(t, strings.Count(out, "."), 3)
}

func TestExtractiveSummarizerDropsShortFragmentsAndDuplicates(t *testing.T) {
	s := NewExtractiveSummarizer()
	text := "Hi. Hi. This is a reasonably long duplicate sentence. This is a reasonably long duplicate sentence."
	out, err := s.Summarize(text)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "reasonably long duplicate sentence"))
}
