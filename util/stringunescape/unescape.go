// Package stringunescape provides Unescaper(s) for escaped strings, e.g. quoted literals in expressions
package stringunescape

import (
	"fmt"
	"strconv"
	"strings"
)

// Unescaper is used to search and unescape sequences like '\n', '\'' or 'ä'
//
// Unescaper instances contain no buffer and may be copied or concurrently used.
type Unescaper struct {
	escapeChar rune
	mapping    map[rune]rune
	unicode    bool // whether '\uXXXX' is supported
}

// Error reports an invalid escape sequence, with offset and length counted in runes of the source
type Error struct {
	Offset  int
	Length  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
}

// NewUnescaper creates an Unescaper with a map of escapable chars to their unescaped values
//
// The escape char itself is always escapable
func NewUnescaper(escapeChar rune, mapping map[rune]rune, unicode bool) Unescaper {
	cmap := make(map[rune]rune, len(mapping)+1)
	for key, val := range mapping {
		cmap[key] = val
	}
	cmap[escapeChar] = escapeChar
	return Unescaper{escapeChar, cmap, unicode}
}

// FindFirstUnescaped finds the rune index of the first unescaped target starting from the given index, or -1
//
// This can be used to find, e.g. the closing quote in `'it\'s'`
func (e Unescaper) FindFirstUnescaped(src []rune, start int, target rune) int {
	pos := start
	for pos < len(src) {
		switch src[pos] {
		case e.escapeChar:
			pos += 2
		case target:
			return pos
		default:
			pos++
		}
	}
	return -1
}

// Run unescapes the given runes
//
// Unknown escape sequences, truncated unicode sequences and a trailing escape char are errors
func (e Unescaper) Run(src []rune) (string, error) {
	builder := strings.Builder{}
	builder.Grow(len(src))
	for pos := 0; pos < len(src); pos++ {
		c := src[pos]
		if c != e.escapeChar {
			builder.WriteRune(c)
			continue
		}
		if pos+1 >= len(src) {
			return "", &Error{Offset: pos, Length: 1, Message: "trailing escape character"}
		}
		next := src[pos+1]
		if e.unicode && next == 'u' {
			if pos+6 > len(src) {
				return "", &Error{Offset: pos, Length: len(src) - pos, Message: "incomplete unicode escape sequence"}
			}
			code, err := strconv.ParseUint(string(src[pos+2:pos+6]), 16, 32)
			if err != nil {
				return "", &Error{Offset: pos, Length: 6, Message: "invalid unicode escape sequence"}
			}
			builder.WriteRune(rune(code))
			pos += 5
			continue
		}
		val, found := e.mapping[next]
		if !found {
			return "", &Error{Offset: pos, Length: 2, Message: fmt.Sprintf("invalid escape sequence '%c%c'", c, next)}
		}
		builder.WriteRune(val)
		pos++
	}
	return builder.String(), nil
}

// RunString unescapes the given string
func (e Unescaper) RunString(src string) (string, error) {
	if !strings.ContainsRune(src, e.escapeChar) {
		return src, nil
	}
	return e.Run([]rune(src))
}
