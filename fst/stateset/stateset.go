/*
Package stateset implements a small destructive, iterable integer set,
grounded on the contract documented (but whose implementation was not
retained) by `lr/iteratable`: a set that can be walked while being mutated,
used by the fst package's worklist algorithms (forward reachability in
Trim) where a classic map[int]bool would otherwise need a separate
"already queued" side-table.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package stateset

// Set is an insertion-ordered set of ints supporting destructive iteration:
// Next both returns and removes the next element, so a worklist can safely
// add new elements to a Set while draining it.
type Set struct {
	members map[int]bool
	order   []int
}

// New creates an empty set, optionally seeded with the given elements.
func New(seed ...int) *Set {
	s := &Set{members: make(map[int]bool, len(seed))}
	for _, x := range seed {
		s.Add(x)
	}
	return s
}

// Add inserts x if absent; reports whether it was newly added.
func (s *Set) Add(x int) bool {
	if s.members[x] {
		return false
	}
	s.members[x] = true
	s.order = append(s.order, x)
	return true
}

// Contains reports whether x is a member.
func (s *Set) Contains(x int) bool { return s.members[x] }

// Len reports the number of live (not-yet-drained) members.
func (s *Set) Len() int { return len(s.order) }

// Empty reports whether the set has no live members left.
func (s *Set) Empty() bool { return len(s.order) == 0 }

// Next removes and returns the oldest live element (FIFO), for worklist-
// style draining. Panics if the set is empty.
func (s *Set) Next() int {
	if len(s.order) == 0 {
		panic("stateset: Next on empty set")
	}
	x := s.order[0]
	s.order = s.order[1:]
	delete(s.members, x)
	return x
}

// Slice returns the live members in insertion order, without draining them.
func (s *Set) Slice() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}
