package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "Chapter 12 - Rescue", Filename(`Chapter 12 - Rescue`))
	assert.Equal(t, "Chapter 12 Rescue", Filename(`Chapter 12: "Rescue"?`))
	assert.Equal(t, "Chapter 1", Filename(` Chapter 1. `))
	assert.Equal(t, "ab", Filename(`a\/b`))
}
