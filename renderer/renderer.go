// Package renderer defines the renderer collaborator contract named in
// spec.md §1 as an external, black-box image compositor. The
// orchestrator only ever calls the three methods below — flush a
// surface's pending texture upload, retarget at an output's plane, and
// repaint a damage/base region pair against the current surface list —
// so that contract is all this package fixes. Two implementations ship
// alongside it: softrenderer (pure Go, always built, used by the
// orchestrator's own tests) and wgpurenderer (optional, GPU-backed).
package renderer

import (
	"github.com/wlcore/compositor/output"
	"github.com/wlcore/compositor/region"
	"github.com/wlcore/compositor/surface"
)

// Renderer is the narrow contract spec.md's damage-calculation and
// per-output repaint steps (§4.H) call into.
type Renderer interface {
	// Flush uploads any pending texture data for s. Called once per
	// surface with non-empty damage, before that damage is translated
	// into global coordinates (spec.md §4.H step 4).
	Flush(s *surface.Surface) error

	// SetTarget points subsequent Repaint calls at o's framebuffer
	// plane.
	SetTarget(o *output.Output) error

	// Repaint paints total (the union of this frame's and the
	// previous frame's damage) against the current target, filling
	// or clearing base (the subset no surface will paint) and
	// drawing surfaces top-down elsewhere.
	Repaint(total, base region.Region, surfaces []*surface.Surface) error
}
