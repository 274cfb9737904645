package util

import (
	"golang.org/x/exp/slices"
)

// InsertSortedString inserts the target into an ascending and duplicate-free slice, keeping it sorted
//
// Returns the new slice and whether the target has been inserted (false if it exists already)
func InsertSortedString(sorted []string, target string) ([]string, bool) {
	index, found := slices.BinarySearch(sorted, target)
	if found {
		return sorted, false
	}
	return slices.Insert(sorted, index, target), true
}

// ContainsSortedString checks whether the target exists in an ascending slice by binary search
func ContainsSortedString(sorted []string, target string) bool {
	_, found := slices.BinarySearch(sorted, target)
	return found
}

// SortedUniqueStrings makes a new ascending and duplicate-free slice from the given list
//
// The source slice is never modified
func SortedUniqueStrings(list []string) []string {
	result := make([]string, 0, len(list))
	for _, item := range list {
		result, _ = InsertSortedString(result, item)
	}
	return result
}
