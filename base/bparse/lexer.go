package bparse

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/util/stringunescape"
)

var quoteUnescaper = stringunescape.NewUnescaper('\\', map[rune]rune{
	'\'': '\'',
	'n':  '\n',
	't':  '\t',
}, true)

// Lexer splits an expression into tokens. The last token is always TokenEOF.
//
// A Lexer is not thread-safe; Reset restarts it from the beginning of the same input.
type Lexer struct {
	input    string
	runes    []rune
	keywords map[string]TokenType
	pos      int
	done     bool
}

// NewSelectorLexer creates a Lexer for tag selector expressions
func NewSelectorLexer(input string) *Lexer {
	return newLexer(input, selectorKeywords)
}

// NewMatcherLexer creates a Lexer for the extended matcher expressions
func NewMatcherLexer(input string) *Lexer {
	return newLexer(input, matcherKeywords)
}

func newLexer(input string, keywords map[string]TokenType) *Lexer {
	return &Lexer{
		input:    input,
		runes:    []rune(input),
		keywords: keywords,
	}
}

// Reset restarts the lexer
func (lx *Lexer) Reset() {
	lx.pos = 0
	lx.done = false
}

// Next returns the next token. After TokenEOF has been returned, further calls return TokenEOF again.
func (lx *Lexer) Next() (Token, error) {
	if lx.pos == 0 && !lx.done && len(lx.input) > defs.SelectorMaxLength {
		lx.done = true
		offset := len([]rune(lx.input[:defs.SelectorMaxLength]))
		return Token{}, &SyntaxError{
			Input:   lx.input,
			Start:   offset,
			End:     offset,
			Message: fmt.Sprintf("expression too long, max %d bytes", defs.SelectorMaxLength),
		}
	}

	for lx.pos < len(lx.runes) && isSpace(lx.runes[lx.pos]) {
		lx.pos++
	}
	if lx.pos >= len(lx.runes) {
		lx.done = true
		eof := len(lx.runes) + 1
		return Token{Type: TokenEOF, Start: eof, End: eof}, nil
	}

	start := lx.pos
	c := lx.runes[start]
	switch c {
	case '(':
		lx.pos++
		return Token{Type: TokenLeftParen, Start: start, End: start, Text: "("}, nil
	case ')':
		lx.pos++
		return Token{Type: TokenRightParen, Start: start, End: start, Text: ")"}, nil
	case ',':
		lx.pos++
		return Token{Type: TokenComma, Start: start, End: start, Text: ","}, nil
	case '\'':
		return lx.nextQuoted(start)
	}

	if !bmatch.IsBareNameChar(c) {
		return Token{}, &SyntaxError{
			Input:   lx.input,
			Start:   start,
			End:     start,
			Message: fmt.Sprintf("unexpected character %q", c),
		}
	}
	for lx.pos < len(lx.runes) && bmatch.IsBareNameChar(lx.runes[lx.pos]) {
		lx.pos++
	}
	word := string(lx.runes[start:lx.pos])
	if typ, ok := lx.keywords[word]; ok {
		return Token{Type: typ, Start: start, End: lx.pos - 1, Text: word}, nil
	}
	return Token{Type: TokenName, Start: start, End: lx.pos - 1, Text: word}, nil
}

func (lx *Lexer) nextQuoted(start int) (Token, error) {
	closing := quoteUnescaper.FindFirstUnescaped(lx.runes, start+1, '\'')
	if closing < 0 {
		return Token{}, &SyntaxError{
			Input:   lx.input,
			Start:   start,
			End:     len(lx.runes) - 1,
			Message: "unterminated quoted name",
		}
	}
	text, err := quoteUnescaper.Run(lx.runes[start+1 : closing])
	if err != nil {
		var escErr *stringunescape.Error
		if errors.As(err, &escErr) {
			offset := start + 1 + escErr.Offset
			return Token{}, &SyntaxError{
				Input:   lx.input,
				Start:   offset,
				End:     offset + escErr.Length - 1,
				Message: escErr.Message,
			}
		}
		return Token{}, err
	}
	lx.pos = closing + 1
	return Token{Type: TokenName, Start: start, End: closing, Text: text}, nil
}

// All returns all remaining tokens including the final TokenEOF
func (lx *Lexer) All() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func isSpace(c rune) bool {
	return unicode.IsSpace(c)
}
