// Package softrenderer is the pure-Go, always-available renderer
// backend. It performs no real GPU work — it exists so the orchestrator
// and its tests have a Renderer implementation that requires no
// hardware, matching the role gogpu-gogpu's own backend registry gives
// a "null"/software option alongside its GPU backends (gpu/backend.go).
package softrenderer

import (
	"github.com/wlcore/compositor/output"
	"github.com/wlcore/compositor/region"
	"github.com/wlcore/compositor/renderer"
	"github.com/wlcore/compositor/surface"
)

// BackendName is the identifier this package registers itself under in
// the renderer registry.
const BackendName = "softrenderer"

func init() {
	renderer.RegisterBackend(BackendName, func() (renderer.Renderer, error) {
		return New(), nil
	})
}

// Renderer records what it was asked to do, for assertions in tests
// that exercise the orchestrator end-to-end without a display.
type Renderer struct {
	target *output.Output

	FlushCount   int
	RepaintCount int

	// LastTotal, LastBase and LastSurfaces capture the arguments of the
	// most recent Repaint call for test inspection.
	LastTotal    region.Region
	LastBase     region.Region
	LastSurfaces int
}

// New returns a ready-to-use software renderer.
func New() *Renderer {
	return &Renderer{}
}

// Flush implements renderer.Renderer.
func (r *Renderer) Flush(s *surface.Surface) error {
	r.FlushCount++
	return nil
}

// SetTarget implements renderer.Renderer.
func (r *Renderer) SetTarget(o *output.Output) error {
	r.target = o
	return nil
}

// Repaint implements renderer.Renderer. It does no pixel work; it only
// records the call for inspection.
func (r *Renderer) Repaint(total, base region.Region, surfaces []*surface.Surface) error {
	r.RepaintCount++
	r.LastTotal = total
	r.LastBase = base
	r.LastSurfaces = len(surfaces)
	return nil
}
