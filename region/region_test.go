package region

import (
	"testing"

	"github.com/wlcore/compositor/geom"
)

func TestEmptyRegion(t *testing.T) {
	rg := Empty()
	if !rg.IsEmpty() {
		t.Errorf("Empty() is not empty")
	}
	if rg.ContainsPoint(0, 0) {
		t.Errorf("Empty() contains (0,0)")
	}
}

func TestFromRectEmptyInput(t *testing.T) {
	rg := FromRect(geom.NewRect(0, 0, 0, 10))
	if !rg.IsEmpty() {
		t.Errorf("FromRect with zero width should be empty, got %v", rg.Rects())
	}
}

func TestUnionDisjoint(t *testing.T) {
	a := FromRect(geom.NewRect(0, 0, 10, 10))
	b := FromRect(geom.NewRect(20, 20, 10, 10))
	u := a.Union(b)

	if u.ContainsPoint(5, 5) != true || u.ContainsPoint(25, 25) != true {
		t.Errorf("union should contain both source rects")
	}
	if u.ContainsPoint(15, 15) {
		t.Errorf("union should not contain the gap between rects")
	}
}

func TestUnionOverlapping(t *testing.T) {
	a := FromRect(geom.NewRect(0, 0, 10, 10))
	b := FromRect(geom.NewRect(5, 5, 10, 10))
	u := a.Union(b)

	for _, p := range []geom.Point{{X: 0, Y: 0}, {X: 9, Y: 9}, {X: 10, Y: 10}, {X: 14, Y: 14}} {
		if !u.ContainsPoint(p.X, p.Y) {
			t.Errorf("union missing point %v", p)
		}
	}
	if u.ContainsPoint(20, 20) {
		t.Errorf("union should not extend past the source rects")
	}
}

func TestIntersect(t *testing.T) {
	a := FromRect(geom.NewRect(0, 0, 10, 10))
	b := FromRect(geom.NewRect(5, 5, 10, 10))
	i := a.Intersect(b)

	if !i.ContainsPoint(7, 7) {
		t.Errorf("intersection should contain overlap point")
	}
	if i.ContainsPoint(2, 2) || i.ContainsPoint(12, 12) {
		t.Errorf("intersection should not extend past the overlap")
	}
}

func TestIntersectDisjointIsEmpty(t *testing.T) {
	a := FromRect(geom.NewRect(0, 0, 10, 10))
	b := FromRect(geom.NewRect(20, 20, 10, 10))
	if !a.Intersect(b).IsEmpty() {
		t.Errorf("intersection of disjoint rects should be empty")
	}
}

func TestSubtract(t *testing.T) {
	a := FromRect(geom.NewRect(0, 0, 10, 10))
	b := FromRect(geom.NewRect(0, 0, 5, 10))
	s := a.Subtract(b)

	if s.ContainsPoint(2, 2) {
		t.Errorf("subtracted area should not remain")
	}
	if !s.ContainsPoint(7, 7) {
		t.Errorf("area outside the subtracted rect should remain")
	}
}

// S3 from spec.md: A fully covers B, so damage \ opaque must be empty.
func TestSubtractFullCoverageYieldsEmpty(t *testing.T) {
	damage := FromRect(geom.NewRect(0, 0, 100, 100))
	opaque := FromRect(geom.NewRect(0, 0, 100, 100))
	base := damage.Subtract(opaque)
	if !base.IsEmpty() {
		t.Errorf("base = damage \\ opaque should be empty when opaque fully covers damage, got %v", base.Rects())
	}
}

func TestTranslate(t *testing.T) {
	a := FromRect(geom.NewRect(0, 0, 10, 10))
	tr := a.Translate(100, 100)

	if tr.ContainsPoint(5, 5) {
		t.Errorf("translated region should not contain the original point")
	}
	if !tr.ContainsPoint(105, 105) {
		t.Errorf("translated region should contain the shifted point")
	}
}

func TestTranslateEmpty(t *testing.T) {
	if !Empty().Translate(10, 10).IsEmpty() {
		t.Errorf("translating the empty region should still be empty")
	}
}

// Processing the same damage region twice through accumulation (union)
// yields the same result — idempotence required by spec.md §8.
func TestUnionIdempotent(t *testing.T) {
	a := FromRect(geom.NewRect(0, 0, 10, 10))
	once := a.Union(a)
	twice := once.Union(a)

	if len(once.Rects()) != len(twice.Rects()) {
		t.Errorf("union should be idempotent: once=%v twice=%v", once.Rects(), twice.Rects())
	}
	if !once.ContainsPoint(5, 5) || !twice.ContainsPoint(5, 5) {
		t.Errorf("idempotent union lost coverage")
	}
}

func TestIntersectRect(t *testing.T) {
	a := FromRect(geom.NewRect(0, 0, 1920, 1080))
	clipped := a.IntersectRect(geom.NewRect(1900, 0, 100, 1080))
	if clipped.ContainsPoint(0, 0) {
		t.Errorf("IntersectRect should clip to the given rect")
	}
	if !clipped.ContainsPoint(1910, 5) {
		t.Errorf("IntersectRect should keep the overlapping area")
	}
}
