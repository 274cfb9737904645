// Package stringtemplate provides string expansion by pre-compiled templates, for example:
//
//	params := map[string]string{"disk": "sda1", "host": "db-primary"}
//	text := MustNewExpander("disk $disk on ${host[:2]} is full").Run(MapLookup(params))
//	// text == "disk sda1 on db is full"
//
// Only named variables are supported. Variables without value are kept verbatim as ${name}
package stringtemplate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Lookup provides the value of a variable by name
type Lookup func(name string) (string, bool)

// Expander provides a precompiled and generic alternative to regexp.Regexp.Expand()
//
// Expander instances contain no buffer and may be copied or concurrently used.
type Expander struct {
	partProviders []partProvider
	variables     []string
}

type partProvider func(lookup Lookup) string

// Empty is an empty template
var Empty = Expander{}

var partRegex = regexp.MustCompile(`(\$\w+|\$\{\w+[^}]*\}|[^$]+|\$)`)

// variableExpressionRegex supports simple substring inside "${VARIABLE}", for example "name[-5:]"
var variableExpressionRegex = regexp.MustCompile(`^(?P<name>\w+)(\[(?P<start>-?[0-9]+)?:(?P<end>-?[0-9]+)?\])?$`)

var (
	capturedNameIndex  = variableExpressionRegex.SubexpIndex("name")
	capturedStartIndex = variableExpressionRegex.SubexpIndex("start")
	capturedEndIndex   = variableExpressionRegex.SubexpIndex("end")
)

// NewExpander compiles a template
func NewExpander(template string) (Expander, error) {
	parts := partRegex.FindAllString(template, -1)
	providers := make([]partProvider, 0, len(parts))
	variables := make([]string, 0, len(parts))
	extractedLen := 0
	for _, p := range parts {
		extractedLen += len(p)
		switch {
		case p == "$":
			if extractedLen < len(template) && template[extractedLen] == '{' {
				return Empty, fmt.Errorf("unenclosed variable quotes: '%s'", template)
			}
			providers = append(providers, newStringPart(p))
		case p[0] != '$':
			providers = append(providers, newStringPart(p))
		case p[1] == '{':
			vexpr := p[2 : len(p)-1]
			submatches := variableExpressionRegex.FindStringSubmatch(vexpr)
			if submatches == nil {
				return Empty, fmt.Errorf("unrecognized variable expression '${%s}'", vexpr)
			}
			vname := submatches[capturedNameIndex]
			provider, err := newSubstringPart(vname, submatches[capturedStartIndex], submatches[capturedEndIndex])
			if err != nil {
				return Empty, fmt.Errorf("invalid variable expression '${%s}': %w", vexpr, err)
			}
			providers = append(providers, provider)
			variables = append(variables, vname)
		default:
			vname := p[1:]
			providers = append(providers, newVariablePart(vname))
			variables = append(variables, vname)
		}
	}
	if extractedLen != len(template) {
		return Empty, fmt.Errorf("unenclosed variable quotes: '%s'", template)
	}
	return Expander{
		partProviders: providers,
		variables:     variables,
	}, nil
}

// Literal creates a template which expands to the given text as-is
func Literal(text string) Expander {
	return Expander{
		partProviders: []partProvider{newStringPart(text)},
	}
}

// MustNewExpander compiles a template or panics
func MustNewExpander(template string) Expander {
	tmpl, err := NewExpander(template)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Variables returns the names of variables referred in the template, in order of appearance
func (tmpl Expander) Variables() []string {
	return append([]string(nil), tmpl.variables...)
}

// Run expands the template with the given variable lookup
func (tmpl Expander) Run(lookup Lookup) string {
	// shortcut for most scenarios
	if len(tmpl.partProviders) == 1 {
		return tmpl.partProviders[0](lookup)
	}
	builder := strings.Builder{}
	for _, provide := range tmpl.partProviders {
		builder.WriteString(provide(lookup))
	}
	return builder.String()
}

// MapLookup creates a Lookup from a simple map
func MapLookup(values map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	}
}

func newStringPart(s string) partProvider {
	return func(lookup Lookup) string {
		return s
	}
}

func newVariablePart(name string) partProvider {
	return func(lookup Lookup) string {
		if v, ok := lookup(name); ok {
			return v
		}
		return "${" + name + "}"
	}
}

func newSubstringPart(name string, startStr string, endStr string) (partProvider, error) {
	var err error
	paramStart := 0
	paramEnd := math.MaxInt32
	if startStr != "" {
		if paramStart, err = strconv.Atoi(startStr); err != nil {
			return nil, err
		}
	}
	if endStr != "" {
		if paramEnd, err = strconv.Atoi(endStr); err != nil {
			return nil, err
		}
	}
	return func(lookup Lookup) string {
		v, ok := lookup(name)
		if !ok {
			return "${" + name + "}"
		}
		start := paramStart
		if start < 0 {
			// e.g. "-2:" of [abc] => [bc]
			start += len(v)
		}
		if start < 0 {
			// e.g. "-5:" of [abc] => [abc]
			start = 0
		}
		if start >= len(v) {
			return ""
		}
		end := paramEnd
		if end < 0 {
			// e.g. ":-1" of [abc] => [ab]
			end += len(v)
		}
		if end < 0 {
			return ""
		}
		if end > len(v) {
			end = len(v)
		}
		if start < end {
			return v[start:end]
		}
		return ""
	}, nil
}
