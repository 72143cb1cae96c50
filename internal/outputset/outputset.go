// Package outputset is a growable bitset over output.ID, the redesign
// spec.md's design notes call for in place of a fixed-width "id_bit:
// 2^n" mask: scheduled_updates and pending_flips both use it so the
// compositor is never capped at a hardcoded output count.
package outputset

import "github.com/wlcore/compositor/output"

const wordBits = 64

// Set is a set of output.ID values backed by a slice of uint64 words.
// The zero value is a valid empty set.
type Set struct {
	words []uint64
}

func wordIndex(id output.ID) (word int, bit uint) {
	return int(id) / wordBits, uint(id) % wordBits
}

// Add inserts id into the set.
func (s *Set) Add(id output.ID) {
	w, b := wordIndex(id)
	if w >= len(s.words) {
		grown := make([]uint64, w+1)
		copy(grown, s.words)
		s.words = grown
	}
	s.words[w] |= 1 << b
}

// Remove deletes id from the set.
func (s *Set) Remove(id output.ID) {
	w, b := wordIndex(id)
	if w >= len(s.words) {
		return
	}
	s.words[w] &^= 1 << b
}

// Has reports whether id is a member.
func (s *Set) Has(id output.ID) bool {
	w, b := wordIndex(id)
	if w >= len(s.words) {
		return false
	}
	return s.words[w]&(1<<b) != 0
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// AndNot returns the members of s that are not members of other — the
// U = scheduled_updates & ~pending_flips computation from spec.md §4.H.
func (s *Set) AndNot(other *Set) Set {
	n := len(s.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	out := Set{words: make([]uint64, n)}
	for i := range out.words {
		var a, b uint64
		if i < len(s.words) {
			a = s.words[i]
		}
		if i < len(other.words) {
			b = other.words[i]
		}
		out.words[i] = a &^ b
	}
	return out
}

// Union returns the members of either s or other.
func (s *Set) Union(other *Set) Set {
	n := len(s.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	out := Set{words: make([]uint64, n)}
	for i := range out.words {
		var a, b uint64
		if i < len(s.words) {
			a = s.words[i]
		}
		if i < len(other.words) {
			b = other.words[i]
		}
		out.words[i] = a | b
	}
	return out
}

// Subtract removes every member of other from s, in place — the
// "scheduled_updates &= ~updates" / "pending_flips &= ~id_bit" pattern.
func (s *Set) Subtract(other *Set) {
	for i := range s.words {
		if i < len(other.words) {
			s.words[i] &^= other.words[i]
		}
	}
}

// Merge adds every member of other into s, in place — the
// "pending_flips |= updates" pattern.
func (s *Set) Merge(other *Set) {
	if len(other.words) > len(s.words) {
		grown := make([]uint64, len(other.words))
		copy(grown, s.words)
		s.words = grown
	}
	for i, w := range other.words {
		s.words[i] |= w
	}
}

// ForEach calls fn for every member, in ascending ID order.
func (s *Set) ForEach(fn func(output.ID)) {
	for w, word := range s.words {
		for b := uint(0); b < wordBits; b++ {
			if word&(1<<b) != 0 {
				fn(output.ID(w*wordBits + int(b)))
			}
		}
	}
}

// SubsetOf reports whether every member of s is also a member of ids —
// used to check the "pending_flips bits are a subset of ids of existing
// outputs" invariant from spec.md §8.
func (s *Set) SubsetOf(ids *Set) bool {
	for i, w := range s.words {
		if i >= len(ids.words) {
			if w != 0 {
				return false
			}
			continue
		}
		if w&^ids.words[i] != 0 {
			return false
		}
	}
	return true
}
