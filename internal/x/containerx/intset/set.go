// Package intset provides an ordered set of small non-negative integers.
package intset

import "sort"

// Set is an ordered set of integers.
//
// The zero-value is an empty set ready for use.
type Set struct {
	members []int // sorted ascending
}

// New returns a set containing the given members.
func New(members ...int) *Set {
	s := &Set{}

	for _, v := range members {
		s.Add(v)
	}

	return s
}

// Len returns the number of members in the set.
func (s *Set) Len() int {
	return len(s.members)
}

// Has returns true if v is a member of the set.
func (s *Set) Has(v int) bool {
	i := sort.SearchInts(s.members, v)
	return i < len(s.members) && s.members[i] == v
}

// Add adds v to the set.
//
// It returns true if v was not already a member.
func (s *Set) Add(v int) bool {
	i := sort.SearchInts(s.members, v)
	if i < len(s.members) && s.members[i] == v {
		return false
	}

	s.members = append(s.members, 0)
	copy(s.members[i+1:], s.members[i:])
	s.members[i] = v

	return true
}

// Union adds every member of o to the set.
func (s *Set) Union(o *Set) {
	for _, v := range o.members {
		s.Add(v)
	}
}

// Min returns the smallest member of the set.
//
// It returns false if the set is empty.
func (s *Set) Min() (int, bool) {
	if len(s.members) == 0 {
		return 0, false
	}

	return s.members[0], true
}

// MinNotIn returns the smallest member of the set that is not a member of o.
//
// It returns false if every member of the set is also a member of o.
func (s *Set) MinNotIn(o *Set) (int, bool) {
	for _, v := range s.members {
		if !o.Has(v) {
			return v, true
		}
	}

	return 0, false
}

// Members returns the members of the set in ascending order.
//
// The returned slice must not be modified.
func (s *Set) Members() []int {
	return s.members
}
