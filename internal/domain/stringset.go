package domain

import "slices"

// StringSet is a set of strings kept sorted and free of duplicates so that
// equal sets compare equal as values and marshal identically.
type StringSet []string

// NewStringSet builds a canonical set from arbitrary values.
func NewStringSet(values ...string) StringSet {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// Contains reports whether value is a member.
func (s StringSet) Contains(value string) bool {
	_, found := slices.BinarySearch(s, value)
	return found
}

// Toggle returns a new set with value removed if present, added otherwise.
func (s StringSet) Toggle(value string) StringSet {
	idx, found := slices.BinarySearch(s, value)
	if found {
		out := slices.Delete(slices.Clone(s), idx, idx+1)
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return slices.Insert(slices.Clone(s), idx, value)
}

// Len returns the number of members.
func (s StringSet) Len() int {
	return len(s)
}

// Normalize re-establishes the canonical form, e.g. after decoding persisted data.
func (s StringSet) Normalize() StringSet {
	return NewStringSet(s...)
}
