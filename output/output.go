// Package output models a physical display output and its scan-out
// plane (spec.md component G): the CRTC's geometry in the global
// coordinate space, the framebuffer plane that double-buffers frames
// for it, and the damage painted into it last frame.
package output

import (
	"github.com/wlcore/compositor/geom"
	"github.com/wlcore/compositor/region"
)

// ID identifies an output. Spec.md's original data model packs output
// identity into a power-of-two bit within a fixed-width mask; per the
// design notes that caps the implementation at the mask width and leaks
// into the public API. This module instead hands out small sequential
// IDs and tracks membership with internal/outputset's growable bitset,
// so the public surface never exposes a bit position.
type ID uint32

// Plane is the framebuffer plane collaborator: double-buffered scan-out
// storage that can be flipped atomically. The real implementation talks
// to DRM/GBM (an external collaborator per spec.md §1); this interface
// is all the orchestrator needs.
type Plane interface {
	// Flip submits the back buffer for scan-out on the next vblank.
	// It returns false on submission failure (busy hardware, no DRM
	// master) without blocking for completion — completion arrives
	// later as a PageFlip event (spec.md §4.F/§4.H).
	Flip() bool
}

// Output is a physical display output together with its plane and the
// damage bookkeeping the orchestrator maintains across frames.
type Output struct {
	ID       ID
	Geometry geom.Geometry
	Plane    Plane

	// PreviousDamage is the region painted in the last completed
	// frame; it must be redrawn again because the back buffer is
	// stale there (spec.md invariant 4).
	PreviousDamage region.Region
}

// New creates an Output with no damage history.
func New(id ID, geometry geom.Geometry, plane Plane) *Output {
	return &Output{ID: id, Geometry: geometry, Plane: plane}
}
