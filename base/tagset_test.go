package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagSet(t *testing.T) {
	tags := NewTagSet("system", "default", "system")
	assert.Equal(t, 2, tags.Len())
	assert.Equal(t, []string{"default", "system"}, tags.Names())
	assert.True(t, tags.Has("default"))
	assert.False(t, tags.Has("test"))
	assert.Equal(t, "{default,system}", tags.String())

	assert.True(t, EmptyTagSet.IsEmpty())
	assert.False(t, EmptyTagSet.Has(""))
}

func TestTagSetWith(t *testing.T) {
	tags := NewTagSet("b")
	more := tags.With("c", "a", "b")
	assert.Equal(t, []string{"a", "b", "c"}, more.Names())
	assert.Equal(t, []string{"b"}, tags.Names(), "source should be untouched")
	assert.Equal(t, tags, tags.With("b"))
	assert.Equal(t, []string{"a", "b", "x"}, NewTagSet("x", "a").Union(tags).Names())
}
