package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	assert.Equal(t, "fr", Detect("Bonjour tout le monde"))
	assert.Equal(t, "es", Detect("Hola amigos"))
	assert.Equal(t, "en", Detect("hello there"))
	assert.Equal(t, "en", Detect(""))
}
