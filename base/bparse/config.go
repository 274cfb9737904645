package bparse

import (
	"errors"

	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/util"
	"gopkg.in/yaml.v3"
)

// SelectorConfig is a tag selector written as expression in YAML, e.g. "propagate: anyOf(db, cache)"
//
// The zero value is undefined and selects all tags
type SelectorConfig struct {
	text     string
	selector bmatch.TagSelector
}

// NewSelectorConfig parses a tag selector expression
func NewSelectorConfig(text string) (SelectorConfig, error) {
	selector, err := ParseTagSelector(text)
	if err != nil {
		return SelectorConfig{}, err
	}
	return SelectorConfig{text, selector}, nil
}

// UnmarshalYAML parses selector expression from a YAML scalar
func (c *SelectorConfig) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return util.NewYamlErrorf(value, "selector must be a string: %s", err)
	}
	selector, err := ParseTagSelector(text)
	if err != nil {
		return newYamlSyntaxError(value, "selector", err)
	}
	c.text = text
	c.selector = selector
	return nil
}

// MarshalYAML writes the original expression
func (c SelectorConfig) MarshalYAML() (interface{}, error) {
	return c.text, nil
}

// IsDefined checks whether the selector has been set
func (c SelectorConfig) IsDefined() bool {
	return c.text != ""
}

// Selector returns the parsed selector, or bmatch.SelectAll if undefined
func (c SelectorConfig) Selector() bmatch.TagSelector {
	if !c.IsDefined() {
		return bmatch.SelectAll
	}
	return c.selector
}

// MatcherConfig is a matcher written as expression in YAML, e.g. "filter: and(db, warn())"
//
// "throwable(name)" is not available in YAML since no error types are registered. The zero value is undefined and matches everything.
type MatcherConfig struct {
	text    string
	matcher *bmatch.Matcher
}

// NewMatcherConfig parses a matcher expression
func NewMatcherConfig(text string, options ...Option) (MatcherConfig, error) {
	m, err := ParseMatcher(text, options...)
	if err != nil {
		return MatcherConfig{}, err
	}
	return MatcherConfig{text, m}, nil
}

// UnmarshalYAML parses matcher expression from a YAML scalar
func (c *MatcherConfig) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return util.NewYamlErrorf(value, "matcher must be a string: %s", err)
	}
	m, err := ParseMatcher(text)
	if err != nil {
		return newYamlSyntaxError(value, "matcher", err)
	}
	c.text = text
	c.matcher = m
	return nil
}

// MarshalYAML writes the original expression
func (c MatcherConfig) MarshalYAML() (interface{}, error) {
	return c.text, nil
}

// IsDefined checks whether the matcher has been set
func (c MatcherConfig) IsDefined() bool {
	return c.text != ""
}

// Matcher returns the parsed matcher, or bmatch.Any() if undefined
func (c MatcherConfig) Matcher() *bmatch.Matcher {
	if !c.IsDefined() {
		return bmatch.Any()
	}
	return c.matcher
}

func newYamlSyntaxError(value *yaml.Node, what string, err error) error {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		if marker := syntaxErr.Marker(); marker != "" {
			return util.NewYamlErrorf(value, "invalid %s: %s\n%s", what, syntaxErr, marker)
		}
	}
	return util.NewYamlErrorf(value, "invalid %s: %s", what, err)
}
