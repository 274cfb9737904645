package bmatch

import (
	"fmt"

	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/defs"
)

// TagSelector is a tag-only matcher, evaluated against a set of tag names without any message
//
// The zero value selects nothing.
type TagSelector struct {
	matcher *Matcher
}

// SelectAll is the selector which matches any tags, including none
var SelectAll = TagSelector{anyMatcher}

// NewTagSelector wraps a tag-only matcher
func NewTagSelector(m *Matcher) (TagSelector, error) {
	if m == nil || !m.tagOnly {
		return TagSelector{}, fmt.Errorf("not a tag selector: %v: %w", m, defs.ErrInvalidArgument)
	}
	return TagSelector{m}, nil
}

// MustNewTagSelector is NewTagSelector which panics on error
func MustNewTagSelector(m *Matcher) TagSelector {
	s, err := NewTagSelector(m)
	if err != nil {
		panic(err)
	}
	return s
}

// Match checks whether the tags match
func (s TagSelector) Match(tags base.TagSet) bool {
	if s.matcher == nil {
		return false
	}
	return s.matcher.matchTags(tags)
}

// MatchNames checks whether the tag names, in any order, match
func (s TagSelector) MatchNames(names ...string) bool {
	return s.Match(base.NewTagSet(names...))
}

// Matcher returns the underlying matcher, which can be combined with other matchers
func (s TagSelector) Matcher() *Matcher {
	if s.matcher == nil {
		return noneMatcher
	}
	return s.matcher
}

// Equal checks structural equality
func (s TagSelector) Equal(other TagSelector) bool {
	return s.Matcher().Equal(other.Matcher())
}

func (s TagSelector) String() string {
	return s.Matcher().String()
}
