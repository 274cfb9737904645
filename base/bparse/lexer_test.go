package bparse

import (
	"errors"
	"strings"
	"testing"

	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/defs"
	"github.com/stretchr/testify/assert"
)

func TestLexerTokens(t *testing.T) {
	tokens, err := NewSelectorLexer("any( ) test").All()
	assert.Nil(t, err)
	assert.Equal(t, []Token{
		{TokenAny, 0, 2, "any"},
		{TokenLeftParen, 3, 3, "("},
		{TokenRightParen, 5, 5, ")"},
		{TokenName, 7, 10, "test"},
		{TokenEOF, 12, 12, ""},
	}, tokens)
}

func TestLexerQuotedNames(t *testing.T) {
	tokens, err := NewSelectorLexer(`'it\'s' , 'x\u0041'`).All()
	assert.Nil(t, err)
	assert.Equal(t, []Token{
		{TokenName, 0, 6, "it's"},
		{TokenComma, 8, 8, ","},
		{TokenName, 10, 18, "xA"},
		{TokenEOF, 20, 20, ""},
	}, tokens)

	tokens, err = NewSelectorLexer(`'and' and`).All()
	assert.Nil(t, err)
	assert.Equal(t, TokenName, tokens[0].Type, "quoted keywords are names")
	assert.Equal(t, TokenAnd, tokens[1].Type)
}

func TestLexerKeywordTables(t *testing.T) {
	tokens, err := NewSelectorLexer("any-of none-of all-of level").All()
	assert.Nil(t, err)
	assert.Equal(t, TokenAnyOf, tokens[0].Type)
	assert.Equal(t, TokenNoneOf, tokens[1].Type)
	assert.Equal(t, TokenAllOf, tokens[2].Type)
	assert.Equal(t, TokenName, tokens[3].Type, "level is only a keyword in matcher grammar")

	tokens, err = NewMatcherLexer("level LEVEL").All()
	assert.Nil(t, err)
	assert.Equal(t, TokenLevel, tokens[0].Type)
	assert.Equal(t, TokenName, tokens[1].Type)

	for word := range matcherKeywords {
		assert.True(t, bmatch.IsReservedName(word), word)
	}
}

func TestLexerReset(t *testing.T) {
	lx := NewSelectorLexer("a b")
	first, _ := lx.All()
	lx.Reset()
	second, _ := lx.All()
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)

	tok, err := lx.Next()
	assert.Nil(t, err)
	assert.Equal(t, TokenEOF, tok.Type, "EOF repeats")
}

func TestLexerErrors(t *testing.T) {
	var syntaxErr *SyntaxError

	_, err := NewSelectorLexer("'abc").All()
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 0, syntaxErr.Start)
	assert.Equal(t, 3, syntaxErr.End)
	assert.Equal(t, "unterminated quoted name", syntaxErr.Message)

	_, err = NewSelectorLexer(`x 'a\qb'`).All()
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 4, syntaxErr.Start)
	assert.Equal(t, 5, syntaxErr.End)

	_, err = NewSelectorLexer(`'\u00'`).All()
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, syntaxErr.Start)

	_, err = NewSelectorLexer(`a\b`).All()
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, 1, syntaxErr.Start)
	assert.Equal(t, 1, syntaxErr.End)

	_, err = NewSelectorLexer(strings.Repeat("x", defs.SelectorMaxLength+1)).All()
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, defs.SelectorMaxLength, syntaxErr.Start)
}
