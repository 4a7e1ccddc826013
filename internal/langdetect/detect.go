// Package langdetect provides a lightweight keyword-heuristic language
// detector used to tag transcript context before summarization.
package langdetect

import "strings"

// markers maps ISO-639-1 tags to lowercase keywords whose presence in the
// input is a strong signal for that language. Checked in map iteration
// order is not guaranteed, so callers needing a fixed priority should rely
// on languageOrder below rather than map order. The short article markers
// carry a space on both sides so they only match whole words.
var markers = map[string][]string{
	"fr": {"bonjour", "merci", " le ", " la ", "tout le monde", "s'il vous plaît"},
	"es": {"hola", "gracias", "amigos", "buenos días", "por favor"},
}

// languageOrder fixes the check priority so detection is deterministic
// regardless of Go's map iteration order.
var languageOrder = []string{"fr", "es"}

// Detect returns the ISO-639-1 tag of the best-matching known marker set,
// defaulting to "en" when nothing matches.
func Detect(text string) string {
	lower := " " + strings.ToLower(text) + " "
	for _, lang := range languageOrder {
		for _, marker := range markers[lang] {
			if strings.Contains(lower, marker) {
				return lang
			}
		}
	}
	return "en"
}
