package outputset

import (
	"testing"

	"github.com/wlcore/compositor/output"
)

func TestAddHasRemove(t *testing.T) {
	var s Set
	if s.Has(3) {
		t.Fatalf("empty set should not have 3")
	}
	s.Add(3)
	if !s.Has(3) {
		t.Fatalf("set should have 3 after Add")
	}
	s.Remove(3)
	if s.Has(3) {
		t.Fatalf("set should not have 3 after Remove")
	}
}

func TestAddBeyondFirstWord(t *testing.T) {
	var s Set
	s.Add(130) // exercises growth past a single 64-bit word
	if !s.Has(130) {
		t.Fatalf("set should have 130")
	}
	if s.Has(129) || s.Has(131) {
		t.Fatalf("set should not have neighboring IDs")
	}
}

func TestAndNot(t *testing.T) {
	var a, b Set
	a.Add(1)
	a.Add(2)
	b.Add(2)

	result := a.AndNot(&b)
	if !result.Has(1) || result.Has(2) {
		t.Fatalf("AndNot result wrong: has1=%v has2=%v", result.Has(1), result.Has(2))
	}
}

func TestUnionAndMerge(t *testing.T) {
	var a, b Set
	a.Add(1)
	b.Add(2)

	u := a.Union(&b)
	if !u.Has(1) || !u.Has(2) {
		t.Fatalf("union missing members")
	}

	a.Merge(&b)
	if !a.Has(1) || !a.Has(2) {
		t.Fatalf("merge missing members")
	}
}

func TestSubtractInPlace(t *testing.T) {
	var a, b Set
	a.Add(5)
	a.Add(6)
	b.Add(5)
	a.Subtract(&b)

	if a.Has(5) || !a.Has(6) {
		t.Fatalf("subtract left wrong members: has5=%v has6=%v", a.Has(5), a.Has(6))
	}
}

func TestForEachAscending(t *testing.T) {
	var s Set
	s.Add(64)
	s.Add(0)
	s.Add(10)

	var seen []output.ID
	s.ForEach(func(id output.ID) { seen = append(seen, id) })

	want := []output.ID{0, 10, 64}
	if len(seen) != len(want) {
		t.Fatalf("ForEach saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("ForEach order %v, want %v", seen, want)
		}
	}
}

func TestSubsetOf(t *testing.T) {
	var ids, pending Set
	ids.Add(0)
	ids.Add(1)
	pending.Add(1)

	if !pending.SubsetOf(&ids) {
		t.Fatalf("pending should be a subset of ids")
	}

	pending.Add(5)
	if pending.SubsetOf(&ids) {
		t.Fatalf("pending with id 5 should not be a subset of ids")
	}
}

func TestIsEmpty(t *testing.T) {
	var s Set
	if !s.IsEmpty() {
		t.Fatalf("zero value should be empty")
	}
	s.Add(0)
	if s.IsEmpty() {
		t.Fatalf("set with a member should not be empty")
	}
}
