// Package bparse parses tag selector and matcher expressions into base/bmatch trees
package bparse

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bmatch"
)

// Option customizes matcher parsing
type Option func(opts *parseOptions)

type parseOptions struct {
	errorTypes map[string]reflect.Type
	levels     []base.Level
}

// WithThrowableType registers an error type usable in "throwable(name)"
func WithThrowableType(name string, errType reflect.Type) Option {
	return func(opts *parseOptions) {
		if opts.errorTypes == nil {
			opts.errorTypes = make(map[string]reflect.Type)
		}
		opts.errorTypes[name] = errType
	}
}

// WithThrowableTypes registers error types by their Go type names, e.g. "*fs.PathError"
//
// These are the names matchers render, so registered types survive String() and re-parsing.
func WithThrowableTypes(errTypes ...reflect.Type) Option {
	return func(opts *parseOptions) {
		for _, errType := range errTypes {
			WithThrowableType(errType.String(), errType)(opts)
		}
	}
}

// WithLevels registers custom named levels usable in "level(name)", in addition to the standard ones
func WithLevels(levels ...base.Level) Option {
	return func(opts *parseOptions) {
		opts.levels = append(opts.levels, levels...)
	}
}

// ParseTagSelector parses a tag selector expression, e.g. "and(allOf(a,b), not(c))"
func ParseTagSelector(text string) (bmatch.TagSelector, error) {
	p := newParser(NewSelectorLexer(text), nil)
	m, err := p.parseAll()
	if err != nil {
		return bmatch.TagSelector{}, err
	}
	return bmatch.NewTagSelector(m)
}

// MustParseTagSelector parses a tag selector expression or panics
func MustParseTagSelector(text string) bmatch.TagSelector {
	selector, err := ParseTagSelector(text)
	if err != nil {
		panic(fmt.Sprintf("failed to parse selector '%s': %s", text, err))
	}
	return selector
}

// ParseMatcher parses a matcher expression, e.g. "and(tag(db), level(WARN), hasParam(query))"
func ParseMatcher(text string, options ...Option) (*bmatch.Matcher, error) {
	opts := &parseOptions{}
	for _, apply := range options {
		apply(opts)
	}
	p := newParser(NewMatcherLexer(text), opts)
	return p.parseAll()
}

// MustParseMatcher parses a matcher expression or panics
func MustParseMatcher(text string, options ...Option) *bmatch.Matcher {
	m, err := ParseMatcher(text, options...)
	if err != nil {
		panic(fmt.Sprintf("failed to parse matcher '%s': %s", text, err))
	}
	return m
}

// parser is a recursive-descent parser over lazily buffered tokens
//
// Parsing functions take the index of their first token and return the index after their last one.
type parser struct {
	lexer   *Lexer
	tokens  []Token
	options *parseOptions // nil for selector grammar
}

func newParser(lexer *Lexer, options *parseOptions) *parser {
	return &parser{
		lexer:   lexer,
		tokens:  make([]Token, 0, 16),
		options: options,
	}
}

func (p *parser) parseAll() (*bmatch.Matcher, error) {
	m, next, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	tok, err := p.token(next)
	if err != nil {
		return nil, err
	}
	if tok.Type != TokenEOF {
		return nil, newSyntaxError(p.lexer.input, tok, "unexpected trailing %s", tok)
	}
	return m, nil
}

// token returns the token at the given index, reading from lexer as needed
func (p *parser) token(index int) (Token, error) {
	for index >= len(p.tokens) {
		if n := len(p.tokens); n > 0 && p.tokens[n-1].Type == TokenEOF {
			return p.tokens[n-1], nil
		}
		tok, err := p.lexer.Next()
		if err != nil {
			return Token{}, err
		}
		p.tokens = append(p.tokens, tok)
	}
	return p.tokens[index], nil
}

func (p *parser) expect(index int, typ TokenType) (Token, error) {
	tok, err := p.token(index)
	if err != nil {
		return tok, err
	}
	if tok.Type != typ {
		return tok, p.unexpected(tok, typ.String())
	}
	return tok, nil
}

func (p *parser) unexpected(tok Token, expected string) error {
	if tok.Type == TokenEOF {
		return newSyntaxError(p.lexer.input, tok, "unexpected end of input, expected %s", expected)
	}
	return newSyntaxError(p.lexer.input, tok, "unexpected %s, expected %s", tok, expected)
}

func (p *parser) parseExpression(index int) (*bmatch.Matcher, int, error) {
	tok, err := p.token(index)
	if err != nil {
		return nil, index, err
	}

	switch tok.Type {
	case TokenName:
		return bmatch.HasTag(tok.Text), index + 1, nil
	case TokenTag, TokenHasTag:
		name, next, err := p.parseSingleArgument(index + 1)
		if err != nil {
			return nil, next, err
		}
		return bmatch.HasTag(name.Text), next, nil
	case TokenAny:
		next, err := p.parseEmptyArguments(index + 1)
		return bmatch.HasAnyTag(), next, err
	case TokenTrue:
		next, err := p.parseEmptyArguments(index + 1)
		return bmatch.Any(), next, err
	case TokenFalse:
		next, err := p.parseEmptyArguments(index + 1)
		return bmatch.None(), next, err
	case TokenAnyOf, TokenAllOf, TokenNoneOf:
		names, next, err := p.parseNameList(index + 1)
		if err != nil {
			return nil, next, err
		}
		switch tok.Type {
		case TokenAnyOf:
			return bmatch.AnyOf(names...), next, nil
		case TokenAllOf:
			return bmatch.AllOf(names...), next, nil
		default:
			return bmatch.NoneOf(names...), next, nil
		}
	case TokenAnd, TokenOr:
		children, next, err := p.parseExpressionList(index + 1)
		if err != nil {
			return nil, next, err
		}
		var m *bmatch.Matcher
		if tok.Type == TokenAnd {
			m, err = bmatch.And(children...)
		} else {
			m, err = bmatch.Or(children...)
		}
		return m, next, err
	case TokenNot:
		if _, err := p.expect(index+1, TokenLeftParen); err != nil {
			return nil, index + 1, err
		}
		child, next, err := p.parseExpression(index + 2)
		if err != nil {
			return nil, next, err
		}
		if _, err := p.expect(next, TokenRightParen); err != nil {
			return nil, next, err
		}
		return bmatch.Not(child), next + 1, nil
	}

	if p.options != nil {
		if m, next, ok, err := p.parseMatcherAtom(tok, index); ok {
			return m, next, err
		}
	}
	return nil, index, p.unexpected(tok, "expression")
}

// parseMatcherAtom parses atoms only available in matcher grammar. Returns false if the token doesn't start one.
func (p *parser) parseMatcherAtom(tok Token, index int) (*bmatch.Matcher, int, bool, error) {
	switch tok.Type {
	case TokenLevel:
		m, next, err := p.parseLevel(index + 1)
		return m, next, true, err
	case TokenTrace:
		next, err := p.parseEmptyArguments(index + 1)
		return bmatch.Level(base.LevelTrace), next, true, err
	case TokenDebug:
		next, err := p.parseEmptyArguments(index + 1)
		return bmatch.IsDebug(), next, true, err
	case TokenInfo:
		next, err := p.parseEmptyArguments(index + 1)
		return bmatch.IsInfo(), next, true, err
	case TokenWarn:
		next, err := p.parseEmptyArguments(index + 1)
		return bmatch.IsWarn(), next, true, err
	case TokenError:
		next, err := p.parseEmptyArguments(index + 1)
		return bmatch.IsError(), next, true, err
	case TokenHasParam:
		key, next, err := p.parseSingleArgument(index + 1)
		if err != nil {
			return nil, next, true, err
		}
		return bmatch.HasParam(key.Text), next, true, nil
	case TokenParam:
		m, next, err := p.parseParamValue(index + 1)
		return m, next, true, err
	case TokenMessageID:
		id, next, err := p.parseSingleArgument(index + 1)
		if err != nil {
			return nil, next, true, err
		}
		return bmatch.HasMessageID(id.Text), next, true, nil
	case TokenMessageLike:
		pattern, next, err := p.parseSingleArgument(index + 1)
		if err != nil {
			return nil, next, true, err
		}
		m, globErr := bmatch.MessageLike(pattern.Text)
		if globErr != nil {
			return nil, next, true, newSyntaxError(p.lexer.input, pattern, "invalid pattern: %s", globErr)
		}
		return m, next, true, nil
	case TokenThrowable:
		m, next, err := p.parseThrowable(index + 1)
		return m, next, true, err
	default:
		return nil, index, false, nil
	}
}

// parseEmptyArguments parses "(" ")"
func (p *parser) parseEmptyArguments(index int) (int, error) {
	if _, err := p.expect(index, TokenLeftParen); err != nil {
		return index, err
	}
	if _, err := p.expect(index+1, TokenRightParen); err != nil {
		return index + 1, err
	}
	return index + 2, nil
}

// parseSingleArgument parses "(" NAME ")"
func (p *parser) parseSingleArgument(index int) (Token, int, error) {
	if _, err := p.expect(index, TokenLeftParen); err != nil {
		return Token{}, index, err
	}
	name, err := p.expect(index+1, TokenName)
	if err != nil {
		return name, index + 1, err
	}
	if _, err := p.expect(index+2, TokenRightParen); err != nil {
		return name, index + 2, err
	}
	return name, index + 3, nil
}

// parseNameList parses "(" NAME ("," NAME)* ")"
func (p *parser) parseNameList(index int) ([]string, int, error) {
	if _, err := p.expect(index, TokenLeftParen); err != nil {
		return nil, index, err
	}
	var names []string
	next := index + 1
	for {
		name, err := p.expect(next, TokenName)
		if err != nil {
			return nil, next, err
		}
		names = append(names, name.Text)
		sep, err := p.token(next + 1)
		if err != nil {
			return nil, next + 1, err
		}
		switch sep.Type {
		case TokenComma:
			next += 2
		case TokenRightParen:
			return names, next + 2, nil
		default:
			return nil, next + 1, p.unexpected(sep, "',' or ')'")
		}
	}
}

// parseExpressionList parses "(" expression ("," expression)* ")"
func (p *parser) parseExpressionList(index int) ([]*bmatch.Matcher, int, error) {
	if _, err := p.expect(index, TokenLeftParen); err != nil {
		return nil, index, err
	}
	var children []*bmatch.Matcher
	next := index + 1
	for {
		child, after, err := p.parseExpression(next)
		if err != nil {
			return nil, after, err
		}
		children = append(children, child)
		sep, err := p.token(after)
		if err != nil {
			return nil, after, err
		}
		switch sep.Type {
		case TokenComma:
			next = after + 1
		case TokenRightParen:
			return children, after + 1, nil
		default:
			return nil, after, p.unexpected(sep, "',' or ')'")
		}
	}
}

// parseLevel parses "(" level ")" where level is a name, a level keyword or a severity number
func (p *parser) parseLevel(index int) (*bmatch.Matcher, int, error) {
	if _, err := p.expect(index, TokenLeftParen); err != nil {
		return nil, index, err
	}
	tok, err := p.token(index + 1)
	if err != nil {
		return nil, index + 1, err
	}
	switch tok.Type {
	case TokenName, TokenTrace, TokenDebug, TokenInfo, TokenWarn, TokenError:
	default:
		return nil, index + 1, p.unexpected(tok, "level")
	}
	level, found := p.lookupLevel(tok.Text)
	if !found {
		return nil, index + 1, newSyntaxError(p.lexer.input, tok, "unknown level '%s'", tok.Text)
	}
	if _, err := p.expect(index+2, TokenRightParen); err != nil {
		return nil, index + 2, err
	}
	return bmatch.Level(level), index + 3, nil
}

func (p *parser) lookupLevel(name string) (base.Level, bool) {
	for _, level := range p.options.levels {
		if strings.EqualFold(level.Name(), name) {
			return level, true
		}
	}
	level, err := base.ParseLevel(name)
	return level, err == nil
}

// parseParamValue parses "(" NAME "," (NAME | "null") ")"
func (p *parser) parseParamValue(index int) (*bmatch.Matcher, int, error) {
	if _, err := p.expect(index, TokenLeftParen); err != nil {
		return nil, index, err
	}
	key, err := p.expect(index+1, TokenName)
	if err != nil {
		return nil, index + 1, err
	}
	if _, err := p.expect(index+2, TokenComma); err != nil {
		return nil, index + 2, err
	}
	valueToken, err := p.token(index + 3)
	if err != nil {
		return nil, index + 3, err
	}
	var value interface{}
	switch valueToken.Type {
	case TokenName:
		value = valueToken.Text
	case TokenNull:
		value = nil
	default:
		return nil, index + 3, p.unexpected(valueToken, "value or null")
	}
	if _, err := p.expect(index+4, TokenRightParen); err != nil {
		return nil, index + 4, err
	}
	return bmatch.HasParamValue(key.Text, value), index + 5, nil
}

// parseThrowable parses "(" ")" or "(" NAME ")"
func (p *parser) parseThrowable(index int) (*bmatch.Matcher, int, error) {
	if _, err := p.expect(index, TokenLeftParen); err != nil {
		return nil, index, err
	}
	tok, err := p.token(index + 1)
	if err != nil {
		return nil, index + 1, err
	}
	switch tok.Type {
	case TokenRightParen:
		return bmatch.HasThrowable(), index + 2, nil
	case TokenName:
		errType, found := p.options.errorTypes[tok.Text]
		if !found {
			return nil, index + 1, newSyntaxError(p.lexer.input, tok, "unknown throwable type '%s'", tok.Text)
		}
		if _, err := p.expect(index+2, TokenRightParen); err != nil {
			return nil, index + 2, err
		}
		return bmatch.HasThrowableOf(errType), index + 3, nil
	default:
		return nil, index + 1, p.unexpected(tok, "throwable type or ')'")
	}
}
