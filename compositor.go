package compositor

import (
	"fmt"
	"log"

	"github.com/wlcore/compositor/internal/outputset"
	"github.com/wlcore/compositor/output"
	"github.com/wlcore/compositor/protocol"
	"github.com/wlcore/compositor/region"
	"github.com/wlcore/compositor/renderer"
	"github.com/wlcore/compositor/surface"
)

// Idler is the narrow seam onto an event loop's one-shot idle queue.
// eventloop.Loop satisfies this directly.
type Idler interface {
	Idle(func())
}

// Compositor is the frame-update orchestrator and key-binding dispatch
// core (spec.md component H). It owns the surface list, per-output
// damage/flip bookkeeping, and the key-binding table; it has no
// knowledge of the wire protocol, the renderer's pixel format, or the
// DRM/evdev device layer beyond the narrow interfaces named in §6.
type Compositor struct {
	config Config

	surfaces *surface.List
	outputs  map[output.ID]*output.Output

	// damage and opaque are in the global coordinate space shared by
	// all outputs (spec.md §3).
	damage region.Region
	opaque region.Region

	scheduledUpdates outputset.Set
	pendingFlips     outputset.Set

	bindings *BindingTable

	renderer renderer.Renderer
	idler    Idler
	sink     protocol.EventSink
}

// New creates a Compositor. renderer and idler must be non-nil; sink
// may be nil if the host never requests frame callbacks (tests
// typically supply a recording fake).
func New(cfg Config, r renderer.Renderer, idler Idler, sink protocol.EventSink) (*Compositor, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}
	if idler == nil {
		return nil, ErrNilIdler
	}
	if cfg.SeatName == "" {
		cfg.SeatName = DefaultSeatName
	}
	if cfg.DefaultVT == 0 {
		cfg.DefaultVT = DefaultVT
	}
	return &Compositor{
		config:   cfg,
		surfaces: &surface.List{},
		outputs:  make(map[output.ID]*output.Output),
		bindings: &BindingTable{},
		renderer: r,
		idler:    idler,
		sink:     sink,
	}, nil
}

// Bindings returns the compositor's key-binding table, for
// seat.NewKeyboardState wiring and for the host to register additional bindings beyond the
// built-ins.
func (c *Compositor) Bindings() *BindingTable { return c.bindings }

// Surfaces returns the z-ordered surface list, for seat.NewPointerState
// wiring.
func (c *Compositor) Surfaces() *surface.List { return c.surfaces }

// AddOutput registers o with the orchestrator. Outputs are enumerated
// once at startup from DRM per spec.md §6 and never added mid-session
// in this core.
func (c *Compositor) AddOutput(o *output.Output) {
	c.outputs[o.ID] = o
}

// AttachSurface links s at the top of the surface list, implementing
// the "attach_class" half of the surface collaborator contract
// (spec.md §4.I). If the underlying list attach fails, no surface is
// inserted and ErrSurfaceAttachFailed wraps the cause, per the
// resource-exhaustion fix in SPEC_FULL.md §3.
func (c *Compositor) AttachSurface(s *surface.Surface) (*surface.ClassState, error) {
	cs, err := c.surfaces.Attach(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceAttachFailed, err)
	}
	return cs, nil
}

// DetachSurface removes s from the surface list, implementing
// "detach_class".
func (c *Compositor) DetachSurface(s *surface.Surface) {
	c.surfaces.Detach(s)
}

// ScheduleUpdate marks output id as needing a repaint, enqueuing the
// idle task on the first request since the last drain (spec.md §4.H
// "schedule_update"): duplicate requests before the idle task runs are
// coalesced into the single already-queued flag check below.
func (c *Compositor) ScheduleUpdate(id output.ID) {
	if c.scheduledUpdates.Has(id) {
		return
	}
	wasEmpty := c.scheduledUpdates.IsEmpty()
	c.scheduledUpdates.Add(id)
	if wasEmpty {
		c.idler.Idle(c.performUpdate)
	}
}

// ScheduleAllOutputs marks every registered output scheduled and
// unions each one's full geometry into the accumulated damage, the
// "treat re-entry as forcing a full-screen damage region" behavior
// spec.md §4.H calls for on VT_ENTER.
func (c *Compositor) ScheduleAllOutputs() {
	for id, o := range c.outputs {
		c.damage = c.damage.Union(region.FromRect(o.Geometry.Rect()))
		c.ScheduleUpdate(id)
	}
}

// performUpdate is the idle task spec.md §4.H names: it computes
// U = scheduled_updates & ~pending_flips, runs damage calculation, and
// repaints each output in U. Only outputs whose flip actually submits
// successfully move from scheduled to pending; a failed flip leaves
// its bit in scheduled_updates so the next cycle retries, per the
// per-output repaint contract in §4.H step 7 and the plane-flip-
// failure handling in §7.
func (c *Compositor) performUpdate() {
	u := c.scheduledUpdates.AndNot(&c.pendingFlips)
	if u.IsEmpty() {
		return
	}

	c.calculateDamage()

	var flipped outputset.Set
	u.ForEach(func(id output.ID) {
		o, ok := c.outputs[id]
		if !ok {
			return
		}
		if c.repaintOutput(o) {
			flipped.Add(id)
		}
	})

	c.pendingFlips.Merge(&flipped)
	c.scheduledUpdates.Subtract(&flipped)
}

// calculateDamage walks surfaces front-to-back (spec.md §4.H "Damage
// calculation"), accumulating the compositor's opaque region and
// global damage, and clearing each surface's per-frame state as it's
// folded in.
func (c *Compositor) calculateDamage() {
	for _, s := range c.surfaces.All() {
		cs := s.Class()
		if cs == nil {
			continue
		}

		cs.Clip = c.opaque

		surfaceOpaqueGlobal := s.State.Opaque.Translate(s.Geometry.X, s.Geometry.Y)
		c.opaque = c.opaque.Union(surfaceOpaqueGlobal)

		if !s.State.Damage.IsEmpty() {
			if err := c.renderer.Flush(s); err != nil {
				log.Printf("compositor: flush surface: %v", err)
			}
			damageGlobal := s.State.Damage.Translate(s.Geometry.X, s.Geometry.Y)
			c.damage = c.damage.Union(damageGlobal)
			s.State.Damage = region.Empty()
		}

		if cs.Border.Damaged {
			borderRegion := region.FromRect(cs.Extents).Subtract(region.FromRect(s.Geometry.Rect()))
			c.damage = c.damage.Union(borderRegion)
			cs.Border.Damaged = false
		}
	}
}

// repaintOutput implements spec.md §4.H "Per-output repaint". It
// returns whether the plane flip was submitted successfully; on
// failure the caller leaves the output's scheduled bit set instead of
// moving it to pending_flips, per §7's plane-flip-failure handling.
func (c *Compositor) repaintOutput(o *output.Output) bool {
	damage := c.damage.IntersectRect(o.Geometry.Rect())
	previous := o.PreviousDamage
	o.PreviousDamage = damage

	total := damage.Union(previous)
	base := total.Subtract(c.opaque)

	if err := c.renderer.SetTarget(o); err != nil {
		log.Printf("compositor: set render target for output %d: %v", o.ID, err)
		return false
	}
	if err := c.renderer.Repaint(total, base, c.surfaces.All()); err != nil {
		log.Printf("compositor: repaint output %d: %v", o.ID, err)
		return false
	}

	c.damage = c.damage.Subtract(total)

	if o.Plane == nil {
		return true
	}
	if !o.Plane.Flip() {
		log.Printf("compositor: flip failed for output %d, will retry", o.ID)
		return false
	}
	return true
}

// HandlePageFlip processes a PAGE_FLIP completion for output id at
// timeMsec, implementing spec.md §4.H "Flip completion". Frame
// callbacks fire to every surface exactly when pending_flips
// transitions to zero; if scheduled_updates is still non-zero, the
// orchestrator re-enters performUpdate directly rather than
// rescheduling on the idle queue, since it is already running inside a
// callback.
func (c *Compositor) HandlePageFlip(id output.ID, timeMsec uint32) error {
	if _, ok := c.outputs[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownOutput, id)
	}
	c.pendingFlips.Remove(id)

	if c.pendingFlips.IsEmpty() && c.sink != nil {
		for _, s := range c.surfaces.All() {
			if err := s.FlushFrameCallbacks(c.sink, timeMsec); err != nil {
				log.Printf("compositor: flush frame callbacks: %v", err)
			}
		}
	}

	if !c.scheduledUpdates.IsEmpty() {
		c.performUpdate()
	}
	return nil
}
