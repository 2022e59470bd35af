package stringsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortHash(t *testing.T) {
	assert.Equal(t, "1a2b3c4", ShortHash("1a2b3c4d5e6f", 7, "none"))
	assert.Equal(t, "1a2b", ShortHash("1a2b", 7, "none"))
	assert.Equal(t, "none", ShortHash("", 7, "none"))
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, UniqueStrings([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, UniqueStrings(nil))
}
