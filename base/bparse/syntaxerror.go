package bparse

import (
	"fmt"
	"strings"
)

// SyntaxError reports a malformed expression with the offending span
//
// Start and End are inclusive offsets counted in runes; both are input length + 1 for premature end of input
type SyntaxError struct {
	Input   string
	Start   int
	End     int
	Message string
}

func newSyntaxError(input string, token Token, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Input:   input,
		Start:   token.Start,
		End:     token.End,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *SyntaxError) Error() string {
	if e.Start == e.End {
		return fmt.Sprintf("syntax error at %d: %s", e.Start, e.Message)
	}
	return fmt.Sprintf("syntax error at %d-%d: %s", e.Start, e.End, e.Message)
}

// Marker renders the input with a line of carets under the offending span, e.g.
//
//	any( ) test
//	       ^^^^
//
// Errors at the end of input are marked right after the last char. Returns empty string for multi-line inputs.
func (e *SyntaxError) Marker() string {
	if strings.ContainsAny(e.Input, "\r\n") {
		return ""
	}
	length := len([]rune(e.Input))
	start := e.Start
	if start > length {
		start = length
	}
	if start < 0 {
		start = 0
	}
	end := e.End
	if end > length {
		end = length
	}
	if end < start {
		end = start
	}
	return e.Input + "\n" + strings.Repeat(" ", start) + strings.Repeat("^", end-start+1)
}
