package compositor

import (
	"log"

	"github.com/wlcore/compositor/drm"
	"github.com/wlcore/compositor/tty"
)

// vtState is the VT/DRM coupling state machine from spec.md §4.H.
type vtState int

const (
	vtActive vtState = iota
	vtInactive
)

// VTDRMCoupler wires tty VT-enter/leave notifications to the DRM
// master lease and to Compositor.ScheduleAllOutputs, implementing the
// two-state machine spec.md §4.H describes: ACTIVE holds the master
// and allows flips; INACTIVE drops it and accrues damage without
// flipping.
type VTDRMCoupler struct {
	drm        *drm.Session
	compositor *Compositor
	state      vtState
}

// NewVTDRMCoupler creates a coupler starting in the ACTIVE state, per
// spec.md §4.H ("Start: ACTIVE").
func NewVTDRMCoupler(drmSession *drm.Session, c *Compositor) *VTDRMCoupler {
	return &VTDRMCoupler{drm: drmSession, compositor: c, state: vtActive}
}

// HandleVTEvent processes one tty.Event, driving the state machine.
// Wire this as the consumer of the channel tty.Open returns.
func (vc *VTDRMCoupler) HandleVTEvent(ev tty.Event) {
	switch ev.Type {
	case tty.VTLeave:
		vc.state = vtInactive
		if err := vc.drm.DropMaster(); err != nil {
			log.Printf("compositor: drop master on vt leave: %v", err)
		}
	case tty.VTEnter:
		vc.state = vtActive
		if err := vc.drm.SetMaster(); err != nil {
			log.Printf("compositor: set master on vt enter: %v", err)
			return
		}
		vc.compositor.ScheduleAllOutputs()
	}
}

// Active reports whether the coupler believes the VT is currently
// active (holding the DRM master).
func (vc *VTDRMCoupler) Active() bool {
	return vc.state == vtActive
}
