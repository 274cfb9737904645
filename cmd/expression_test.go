package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSelect(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.Nil(t, runSelect(buf, "anyOf(b, a, b)", []string{"a", "x"}))
	assert.Equal(t, "selector: anyOf(a,b)\nmatches [a x]: true\n", buf.String())

	buf.Reset()
	err := runSelect(buf, "any( ) test", nil)
	assert.Error(t, err)
	reportSyntaxError(buf, err)
	assert.Equal(t, "any( ) test\n       ^^^^\n", buf.String())
}

func TestRunCheck(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.Nil(t, runCheck(buf, "and(and(a, b), true())"))
	assert.Equal(t, "matcher: and(a,b)\nkind: and\ntag selector: true\n", buf.String())

	buf.Reset()
	assert.Nil(t, runCheck(buf, "not(not(warn()))"))
	assert.Equal(t, "matcher: level(WARN)\nkind: level\ntag selector: false\n", buf.String())

	assert.Error(t, runCheck(buf, "level(LOUD)"))
}
