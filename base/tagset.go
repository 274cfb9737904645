package base

import (
	"strings"

	"github.com/relex/slog-protocol/util"
)

// TagSet is an immutable set of tag names, kept in ascending order for binary search
type TagSet struct {
	names []string
}

// EmptyTagSet contains no tags
var EmptyTagSet = TagSet{}

// NewTagSet creates a TagSet from names in any order; duplicates collapse
func NewTagSet(names ...string) TagSet {
	return TagSet{util.SortedUniqueStrings(names)}
}

// Has checks whether the given tag is in this set
func (s TagSet) Has(name string) bool {
	return util.ContainsSortedString(s.names, name)
}

// Len returns the number of tags
func (s TagSet) Len() int {
	return len(s.names)
}

// IsEmpty returns true if there is no tag
func (s TagSet) IsEmpty() bool {
	return len(s.names) == 0
}

// Names returns a copy of tag names in ascending order
func (s TagSet) Names() []string {
	return append([]string(nil), s.names...)
}

// With returns a new set containing the tags of this set and the given names
//
// The receiver is returned as-is if nothing is added
func (s TagSet) With(names ...string) TagSet {
	result := s.names
	copied := false
	for _, name := range names {
		if util.ContainsSortedString(result, name) {
			continue
		}
		if !copied {
			result = append(make([]string, 0, len(s.names)+len(names)), s.names...)
			copied = true
		}
		result, _ = util.InsertSortedString(result, name)
	}
	if !copied {
		return s
	}
	return TagSet{result}
}

// Union returns a new set of the tags in either set
func (s TagSet) Union(other TagSet) TagSet {
	return s.With(other.names...)
}

func (s TagSet) String() string {
	return "{" + strings.Join(s.names, ",") + "}"
}
