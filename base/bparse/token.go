package bparse

import (
	"fmt"
)

// TokenType is the type of lexical tokens
type TokenType uint8

// Token types
const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenComma
	TokenName // bare or quoted literal, e.g. a tag name

	// keywords of selector grammar
	TokenAny
	TokenAnyOf
	TokenAllOf
	TokenNoneOf
	TokenAnd
	TokenOr
	TokenNot
	TokenTrue
	TokenFalse
	TokenTag

	// additional keywords of matcher grammar
	TokenHasTag
	TokenLevel
	TokenTrace
	TokenDebug
	TokenInfo
	TokenWarn
	TokenError
	TokenHasParam
	TokenParam
	TokenNull
	TokenMessageID
	TokenMessageLike
	TokenThrowable
)

var tokenTypeNames = [...]string{
	TokenEOF:         "end of input",
	TokenLeftParen:   "'('",
	TokenRightParen:  "')'",
	TokenComma:       "','",
	TokenName:        "name",
	TokenAny:         "any",
	TokenAnyOf:       "anyOf",
	TokenAllOf:       "allOf",
	TokenNoneOf:      "noneOf",
	TokenAnd:         "and",
	TokenOr:          "or",
	TokenNot:         "not",
	TokenTrue:        "true",
	TokenFalse:       "false",
	TokenTag:         "tag",
	TokenHasTag:      "hasTag",
	TokenLevel:       "level",
	TokenTrace:       "trace",
	TokenDebug:       "debug",
	TokenInfo:        "info",
	TokenWarn:        "warn",
	TokenError:       "error",
	TokenHasParam:    "hasParam",
	TokenParam:       "param",
	TokenNull:        "null",
	TokenMessageID:   "messageId",
	TokenMessageLike: "messageLike",
	TokenThrowable:   "throwable",
}

func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// selectorKeywords is the keyword table of selector grammar, including hyphenated spellings
var selectorKeywords = map[string]TokenType{
	"any":     TokenAny,
	"anyOf":   TokenAnyOf,
	"any-of":  TokenAnyOf,
	"allOf":   TokenAllOf,
	"all-of":  TokenAllOf,
	"noneOf":  TokenNoneOf,
	"none-of": TokenNoneOf,
	"and":     TokenAnd,
	"or":      TokenOr,
	"not":     TokenNot,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"tag":     TokenTag,
}

// matcherKeywords is the keyword table of matcher grammar, a superset of selectorKeywords
var matcherKeywords = func() map[string]TokenType {
	table := map[string]TokenType{
		"hasTag":      TokenHasTag,
		"level":       TokenLevel,
		"trace":       TokenTrace,
		"debug":       TokenDebug,
		"info":        TokenInfo,
		"warn":        TokenWarn,
		"error":       TokenError,
		"hasParam":    TokenHasParam,
		"param":       TokenParam,
		"null":        TokenNull,
		"messageId":   TokenMessageID,
		"messageLike": TokenMessageLike,
		"throwable":   TokenThrowable,
	}
	for word, typ := range selectorKeywords {
		table[word] = typ
	}
	return table
}()

// Token is a lexical token with its position in the input
//
// Start and End are inclusive offsets counted in runes. For TokenEOF both are input length + 1.
type Token struct {
	Type  TokenType
	Start int
	End   int
	Text  string // unescaped contents for names, source text otherwise
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return t.Type.String()
	case TokenName:
		return fmt.Sprintf("name '%s'", t.Text)
	default:
		return "'" + t.Text + "'"
	}
}
