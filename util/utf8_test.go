package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "hello", TruncateUTF8("hello", 10))
	assert.Equal(t, "hel", TruncateUTF8("hello", 3))
	assert.Equal(t, "", TruncateUTF8("hello", 0))
	assert.Equal(t, "a", TruncateUTF8("aäb", 2), "ä is 2 bytes")
	assert.Equal(t, "aä", TruncateUTF8("aäb", 3))
	assert.Equal(t, "", TruncateUTF8("世界", 2))
}
