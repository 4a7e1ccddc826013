package models

import (
	"sort"
	"strings"
)

// ExtractiveSummarizer implements Summarizer with a heuristic pipeline:
// split into sentences, score by length and keyword frequency, drop
// duplicates and short fragments, keep the top-scoring handful in
// original order. Falls back to the first three sufficiently long
// sentences when scoring yields nothing worth keeping.
type ExtractiveSummarizer struct {
	maxSentences int
}

// NewExtractiveSummarizer returns an ExtractiveSummarizer keeping up to
// three sentences.
func NewExtractiveSummarizer() *ExtractiveSummarizer {
	return &ExtractiveSummarizer{maxSentences: 3}
}

// Summarize implements Summarizer.
func (s *ExtractiveSummarizer) Summarize(text string) (string, error) {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return "", nil
	}

	picked := topSentences(scoreSentences(sentences), s.maxSentences)
	if len(picked) == 0 {
		picked = fallbackSentences(sentences, s.maxSentences)
	}
	return strings.Join(picked, " "), nil
}

// Close implements Summarizer.
func (*ExtractiveSummarizer) Close() error { return nil }

type scoredSentence struct {
	text  string
	index int
	score float64
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '\n' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// keywordWeights boosts sentences mentioning words that typically carry
// lecture-notes signal.
var keywordWeights = map[string]float64{
	"important":  2,
	"summary":    2,
	"therefore":  1.5,
	"because":    1.2,
	"conclusion": 2,
	"key":        1.5,
	"note":       1.2,
	"remember":   1.5,
}

func scoreSentences(sentences []string) []scoredSentence {
	seen := make(map[string]bool, len(sentences))
	scored := make([]scoredSentence, 0, len(sentences))
	for i, s := range sentences {
		if len(s) < 10 {
			continue
		}
		lower := strings.ToLower(s)
		if seen[lower] {
			continue
		}
		seen[lower] = true

		score := float64(len(strings.Fields(s)))
		for word, weight := range keywordWeights {
			if strings.Contains(lower, word) {
				score += weight * 10
			}
		}
		scored = append(scored, scoredSentence{text: s, index: i, score: score})
	}
	return scored
}

func topSentences(scored []scoredSentence, n int) []string {
	if len(scored) == 0 {
		return nil
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > n {
		scored = scored[:n]
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].index < scored[j].index })

	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.text + "."
	}
	return out
}

func fallbackSentences(sentences []string, n int) []string {
	var out []string
	for _, s := range sentences {
		if len(s) >= 10 {
			out = append(out, s+".")
		}
		if len(out) >= n {
			break
		}
	}
	return out
}
