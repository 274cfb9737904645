// Package bmatch provides the matcher algebra: immutable boolean expression trees over message levels, tags,
// parameters, message ids and throwables
//
// Matchers are created only through the constructors in this package, which normalize the trees:
//   - and/or are flattened, with duplicated members removed and constant members folded
//   - not(not(x)) is x, not(true()) is false() and vice versa
//   - tag lists are sorted and duplicate-free, and single-tag lists become a plain tag match
//
// Matchers are never modified after construction and may be shared freely among trees and goroutines.
package bmatch

import (
	"reflect"

	"github.com/gobwas/glob"
	"github.com/relex/slog-protocol/base"
)

// Kind identifies the variant of a Matcher node
type Kind uint8

// Kinds of matchers
const (
	KindAny         Kind = iota // always true
	KindNone                    // always false
	KindAnyTag                  // message has at least one tag
	KindTag                     // message has the tag
	KindAnyOf                   // message has any of the tags
	KindAllOf                   // message has all of the tags
	KindNoneOf                  // message has none of the tags
	KindLevel                   // min(message level, level limit) >= level
	KindParam                   // message has the parameter
	KindParamValue              // message has the parameter with the value
	KindMessageID               // message id equals
	KindMessageLike             // message id matches glob pattern
	KindThrowable               // message has a throwable, optionally of a type
	KindNot
	KindAnd
	KindOr
)

var kindNames = [...]string{
	KindAny:         "any",
	KindNone:        "none",
	KindAnyTag:      "anyTag",
	KindTag:         "tag",
	KindAnyOf:       "anyOf",
	KindAllOf:       "allOf",
	KindNoneOf:      "noneOf",
	KindLevel:       "level",
	KindParam:       "param",
	KindParamValue:  "paramValue",
	KindMessageID:   "messageId",
	KindMessageLike: "messageLike",
	KindThrowable:   "throwable",
	KindNot:         "not",
	KindAnd:         "and",
	KindOr:          "or",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Matcher is a node of matcher tree
type Matcher struct {
	kind     Kind
	names    []string   // tag names, ascending and unique
	level    base.Level // KindLevel
	key      string     // parameter key, message id or glob pattern
	value    interface{}
	glob     glob.Glob    // KindMessageLike
	errType  reflect.Type // KindThrowable, nil for any throwable
	children []*Matcher   // KindNot: one; KindAnd, KindOr: two or more, ordered by cost and text
	tagOnly  bool         // all atoms are tag-related
	cost     int          // relative cost used to decide which operand should be evaluated first
	text     string       // canonical expression
	id       string       // structural identity if different from text, i.e. with package-qualified type names
}

// Kind returns the variant of this node
func (m *Matcher) Kind() Kind {
	return m.kind
}

// TagNames returns the tag names of tag atoms in ascending order
func (m *Matcher) TagNames() []string {
	return append([]string(nil), m.names...)
}

// Level returns the level of KindLevel
func (m *Matcher) Level() base.Level {
	return m.level
}

// ParamKey returns the parameter key of KindParam and KindParamValue
func (m *Matcher) ParamKey() string {
	if m.kind != KindParam && m.kind != KindParamValue {
		return ""
	}
	return m.key
}

// ParamValue returns the expected value of KindParamValue, which may be nil
func (m *Matcher) ParamValue() interface{} {
	return m.value
}

// MessageID returns the id of KindMessageID or the pattern of KindMessageLike
func (m *Matcher) MessageID() string {
	if m.kind != KindMessageID && m.kind != KindMessageLike {
		return ""
	}
	return m.key
}

// ThrowableType returns the required type of KindThrowable, or nil if any throwable matches
func (m *Matcher) ThrowableType() reflect.Type {
	return m.errType
}

// Children returns the operands of KindNot, KindAnd and KindOr
func (m *Matcher) Children() []*Matcher {
	return append([]*Matcher(nil), m.children...)
}

// IsTagSelector returns true if all atoms in this tree are tag-related, so that it can be evaluated on tags alone
func (m *Matcher) IsTagSelector() bool {
	return m.tagOnly
}

// Equal checks structural equality
func (m *Matcher) Equal(other *Matcher) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return m.identity() == other.identity()
}

func (m *Matcher) identity() string {
	if m.id != "" {
		return m.id
	}
	return m.text
}

// String returns the canonical expression, which can be parsed back in the matcher grammar
func (m *Matcher) String() string {
	return m.text
}
