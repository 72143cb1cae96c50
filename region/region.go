// Package region is the region algebra adapter named in the compositor
// spec (component A): a thin, idiomatic wrapper around rectangle-set
// union/intersect/subtract/translate/point-in-set. The underlying
// decomposition algorithm is considered a private implementation detail
// — spec.md treats the actual region arithmetic library as an external
// collaborator; this package is the adapter the orchestrator programs
// against, not a claim about how a production region library is built.
//
// All operations are total: an empty Region is a legal input and output,
// and every method returns a new, normalized (sorted, disjoint,
// row-merged) Region rather than mutating shared state, so callers can
// freely alias without synchronization — consistent with the
// single-threaded event-loop model described in spec.md §5.
package region

import (
	"golang.org/x/exp/slices"

	"github.com/wlcore/compositor/geom"
)

// Region is an immutable set of axis-aligned integer rectangles.
type Region struct {
	rects []geom.Rect // sorted, disjoint, row-merged; nil means empty
}

// Empty returns the empty region.
func Empty() Region { return Region{} }

// FromRect returns a region containing exactly one rectangle (empty if
// r itself is empty).
func FromRect(r geom.Rect) Region {
	if r.Empty() {
		return Region{}
	}
	return Region{rects: []geom.Rect{r}}
}

// IsEmpty reports whether the region covers no area.
func (rg Region) IsEmpty() bool {
	return len(rg.rects) == 0
}

// Rects returns the region's normalized rectangle decomposition. The
// caller must not mutate the returned slice.
func (rg Region) Rects() []geom.Rect {
	return rg.rects
}

// ContainsPoint reports whether (x, y) lies in the region. The
// decomposition is row-sorted, so a real adapter backed by a library
// such as pixman resolves this in O(log rects); this reference
// implementation scans the (typically small) rectangle list directly.
func (rg Region) ContainsPoint(x, y int32) bool {
	for _, r := range rg.rects {
		if r.ContainsPoint(x, y) {
			return true
		}
	}
	return false
}

// Translate returns the region shifted by (dx, dy).
func (rg Region) Translate(dx, dy int32) Region {
	if rg.IsEmpty() {
		return Region{}
	}
	out := make([]geom.Rect, len(rg.rects))
	for i, r := range rg.rects {
		out[i] = r.Translate(dx, dy)
	}
	return Region{rects: out}
}

// Union returns the set union of rg and other.
func (rg Region) Union(other Region) Region {
	return combine(rg, other, func(a, b bool) bool { return a || b })
}

// Intersect returns the set intersection of rg and other.
func (rg Region) Intersect(other Region) Region {
	return combine(rg, other, func(a, b bool) bool { return a && b })
}

// Subtract returns rg with other's area removed.
func (rg Region) Subtract(other Region) Region {
	return combine(rg, other, func(a, b bool) bool { return a && !b })
}

// IntersectRect intersects rg with a single rectangle; a convenience for
// per-output clipping (compositor.damage ∩ output.geometry).
func (rg Region) IntersectRect(r geom.Rect) Region {
	return rg.Intersect(FromRect(r))
}

// combine computes a boolean-grid decomposition of rg and other and
// rebuilds a normalized region from cells where keep(inA, inB) holds.
// Cost is O(E^2) in the number of distinct edges, which is immaterial
// for the handful of surfaces a compositor frame touches.
func combine(a, b Region, keep func(inA, inB bool) bool) Region {
	if a.IsEmpty() && b.IsEmpty() {
		return Region{}
	}

	xs := edges(a, b, func(r geom.Rect) (int32, int32) { return r.X, r.X + r.Width })
	ys := edges(a, b, func(r geom.Rect) (int32, int32) { return r.Y, r.Y + r.Height })
	if len(xs) < 2 || len(ys) < 2 {
		return Region{}
	}

	var cells []geom.Rect
	for yi := 0; yi+1 < len(ys); yi++ {
		y0, y1 := ys[yi], ys[yi+1]
		midY := y0 // any point strictly inside [y0, y1) suffices since edges are the breakpoints
		for xi := 0; xi+1 < len(xs); xi++ {
			x0, x1 := xs[xi], xs[xi+1]
			midX := x0
			inA := containsCell(a, midX, midY)
			inB := containsCell(b, midX, midY)
			if keep(inA, inB) {
				cells = append(cells, geom.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0})
			}
		}
	}
	return normalize(cells)
}

func containsCell(rg Region, x, y int32) bool {
	for _, r := range rg.rects {
		if x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height {
			return true
		}
	}
	return false
}

func edges(a, b Region, span func(geom.Rect) (int32, int32)) []int32 {
	set := make(map[int32]struct{})
	for _, r := range a.rects {
		lo, hi := span(r)
		set[lo] = struct{}{}
		set[hi] = struct{}{}
	}
	for _, r := range b.rects {
		lo, hi := span(r)
		set[lo] = struct{}{}
		set[hi] = struct{}{}
	}
	out := make([]int32, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// normalize merges a set of non-overlapping cells into a smaller,
// row-then-column-merged rectangle list. Cells are assumed disjoint
// (they come from a single combine() grid pass).
func normalize(cells []geom.Rect) Region {
	if len(cells) == 0 {
		return Region{}
	}
	slices.SortFunc(cells, func(a, b geom.Rect) int {
		if a.Y != b.Y {
			return int(a.Y - b.Y)
		}
		return int(a.X - b.X)
	})

	// Merge adjacent cells sharing a Y-span into single wide rects.
	var rows []geom.Rect
	i := 0
	for i < len(cells) {
		row := cells[i]
		j := i + 1
		for j < len(cells) && cells[j].Y == row.Y && cells[j].Height == row.Height && cells[j].X == row.X+row.Width {
			row.Width += cells[j].Width
			j++
		}
		rows = append(rows, row)
		i = j
	}

	// Merge vertically adjacent rows with identical X-spans.
	var merged []geom.Rect
	used := make([]bool, len(rows))
	for i := range rows {
		if used[i] {
			continue
		}
		r := rows[i]
		for {
			extended := false
			for j := range rows {
				if used[j] || j == i {
					continue
				}
				if rows[j].X == r.X && rows[j].Width == r.Width && rows[j].Y == r.Y+r.Height {
					r.Height += rows[j].Height
					used[j] = true
					extended = true
				}
			}
			if !extended {
				break
			}
		}
		merged = append(merged, r)
	}

	slices.SortFunc(merged, func(a, b geom.Rect) int {
		if a.Y != b.Y {
			return int(a.Y - b.Y)
		}
		return int(a.X - b.X)
	})
	return Region{rects: merged}
}
