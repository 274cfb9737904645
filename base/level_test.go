package base

import (
	"testing"

	"github.com/relex/slog-protocol/util"
	"github.com/stretchr/testify/assert"
)

func TestLevelOrder(t *testing.T) {
	assert.Equal(t, -1, CompareLevels(LevelInfo, LevelWarn))
	assert.Equal(t, 1, CompareLevels(LevelError, LevelWarn))
	assert.Equal(t, 0, CompareLevels(NewLevel("NOTICE", 300), LevelInfo), "same severity counts as equal")

	assert.Equal(t, LevelInfo, MinLevel(LevelWarn, LevelInfo))
	assert.Equal(t, LevelInfo, MinLevel(LevelInfo, LevelHighest))
	assert.Equal(t, "NOTICE", MinLevel(NewLevel("NOTICE", 300), LevelInfo).Name(), "first wins on equal severity")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("warn")
	if assert.NoError(t, err) {
		assert.Equal(t, LevelWarn, l)
	}
	l, err = ParseLevel("500")
	if assert.NoError(t, err) {
		assert.Equal(t, LevelError, l)
	}
	l, err = ParseLevel("350")
	if assert.NoError(t, err) {
		assert.Equal(t, 350, l.Severity())
		assert.Equal(t, "350", l.String())
	}
	_, err = ParseLevel("loud")
	assert.EqualError(t, err, "unknown level 'loud'")
}

func TestLevelYaml(t *testing.T) {
	d := &struct {
		Limit Level `yaml:"limit"`
	}{}
	if assert.NoError(t, util.UnmarshalYamlString(`limit: Debug`, d)) {
		assert.Equal(t, LevelDebug, d.Limit)
	}
	assert.EqualError(t, util.UnmarshalYamlString(`limit: loud`, d), "yaml line 1:8: unknown level 'loud'")

	text, err := util.MarshalYaml(d)
	if assert.NoError(t, err) {
		assert.Equal(t, "limit: DEBUG\n", text)
	}
}
