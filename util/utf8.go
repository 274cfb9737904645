package util

import (
	"unicode/utf8"
)

// TruncateUTF8 cuts the string to at most maxLen bytes without splitting multi-byte chars
func TruncateUTF8(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	end := maxLen
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}
