// Package surface implements the surface collaborator contract named in
// spec.md component I: the orchestrator-owned class state attached to
// each client surface, and the ordered, z-sorted surface list the
// orchestrator walks during damage calculation and repaint.
//
// The surface's resource lifecycle (creation, buffer attach, commit
// dispatch) is an external collaborator per spec.md §1; this package
// models only the state the orchestrator itself owns: geometry, the
// per-frame damage/opaque/input state the resource layer publishes into
// it, and the class state (clip/extents/border) the orchestrator
// maintains across frames.
package surface

import (
	"github.com/wlcore/compositor/geom"
	"github.com/wlcore/compositor/protocol"
	"github.com/wlcore/compositor/region"
)

// State is the per-frame state a surface resource publishes before each
// update: damage/opaque/input regions in the surface's local coordinate
// space.
type State struct {
	Damage region.Region
	Opaque region.Region
	Input  region.Region
}

// ClassState is the slot spec.md's data model reserves for the
// orchestrator on every surface: what's occluded above it (Clip), its
// global bounding box including any border decoration (Extents), and
// whether that border needs repainting.
type ClassState struct {
	Clip    region.Region
	Extents geom.Rect
	Border  struct {
		Damaged bool
	}
}

// Surface is a client surface as the orchestrator sees it: its placement
// in the global coordinate space, its published per-frame state, and the
// class state the orchestrator maintains.
type Surface struct {
	Geometry geom.Geometry
	State    State

	// BorderWidth is the decoration thickness included in Extents but
	// outside Geometry; zero for undecorated surfaces.
	BorderWidth int32

	class *ClassState

	// pending holds frame-callback object IDs requested by the client
	// (wl_surface.frame) and not yet fired.
	pending []protocol.ObjectID
}

// Class returns the surface's class state, or nil if it hasn't been
// attached to a List.
func (s *Surface) Class() *ClassState {
	return s.class
}

// RequestFrameCallback records a client's wl_surface.frame request to be
// fulfilled the next time the compositor's pending flips drain to zero.
func (s *Surface) RequestFrameCallback(callback protocol.ObjectID) {
	s.pending = append(s.pending, callback)
}

// FlushFrameCallbacks sends wl_callback.done for every outstanding frame
// callback request and clears the queue. It implements the "exactly
// once per surface per completed flip batch" guarantee from spec.md's
// invariant 5 — surfaces with no pending request are a no-op.
func (s *Surface) FlushFrameCallbacks(sink protocol.EventSink, timeMsec uint32) error {
	for _, cb := range s.pending {
		if err := sink.SendEvent(protocol.FrameDone(cb, timeMsec)); err != nil {
			return err
		}
	}
	s.pending = s.pending[:0]
	return nil
}

// extents computes the surface's bounding box (geometry expanded by
// its border); callers store it in the class state.
func (s *Surface) extents() geom.Rect {
	r := s.Geometry.Rect()
	if s.BorderWidth == 0 {
		return r
	}
	return geom.NewRect(r.X-s.BorderWidth, r.Y-s.BorderWidth, r.Width+2*s.BorderWidth, r.Height+2*s.BorderWidth)
}

// List is the z-ordered surface list from spec.md's data model: index 0
// is topmost (front), walked front-to-back during damage calculation.
type List struct {
	surfaces []*Surface
}

// Attach inserts s at the top of the list and initializes its class
// state, mirroring the "attach_class" half of the surface collaborator
// contract. It never fails in this reference implementation, but returns
// an error to preserve the contract's "bubbled to the resource layer's
// no-memory mechanism" shape from spec.md §7.
func (l *List) Attach(s *Surface) (*ClassState, error) {
	cs := &ClassState{Extents: s.extents()}
	s.class = cs
	l.surfaces = append([]*Surface{s}, l.surfaces...)
	return cs, nil
}

// Detach removes s from the list and frees its class state.
func (l *List) Detach(s *Surface) {
	for i, other := range l.surfaces {
		if other == s {
			l.surfaces = append(l.surfaces[:i], l.surfaces[i+1:]...)
			break
		}
	}
	s.class = nil
}

// All returns the surfaces in front-to-back (top-to-bottom) z-order. The
// caller must not retain the slice across a subsequent Attach/Detach.
func (l *List) All() []*Surface {
	return l.surfaces
}

// Len reports the number of attached surfaces.
func (l *List) Len() int {
	return len(l.surfaces)
}

// RefreshExtents recomputes a surface's bounding box after its geometry
// changes and marks its border damaged so the next damage pass repaints
// the decoration. Call this from the resource layer's commit handler
// whenever geometry or border width changes.
func (s *Surface) RefreshExtents() {
	if s.class == nil {
		return
	}
	s.class.Extents = s.extents()
	s.class.Border.Damaged = true
}
