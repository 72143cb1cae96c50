// Package tty manages the virtual terminal this compositor occupies
// (spec.md component E): acquiring a VT, switching to another one, and
// delivering VT_ENTER/VT_LEAVE events when the session gains or loses
// the console — the signal that drives the DRM master handoff in
// vtdrm.go.
//
// Modeled on the original's SWC_TTY_VT_ENTER/SWC_TTY_VT_LEAVE pair
// (original_source/libswc/compositor.c handle_tty_event): entering a VT
// means the session may re-acquire the DRM master; leaving means it
// must drop it before the kernel switches the console away.
package tty

import (
	"fmt"
)

// EventType distinguishes the two session transitions this package
// reports.
type EventType int

const (
	// VTEnter fires when this session (re)gains the active VT.
	VTEnter EventType = iota
	// VTLeave fires when the kernel is about to switch the VT away
	// from this session; the receiver must relinquish the DRM master
	// before acknowledging (see Session.AckRelease).
	VTLeave
)

// Event is a VT transition notification.
type Event struct {
	Type EventType
}

// Session represents this process's ownership of one virtual
// terminal. A real implementation opens /dev/tty<n>, issues
// VT_SETMODE/VT_ACTIVATE ioctls, and receives SIGUSR1/SIGUSR2 signals
// for pending switches; this package exposes that as a Go channel,
// which the host drains from its event loop (the epoll loop in
// eventloop watches fds only, not channels).
type Session struct {
	vt     uint8
	events chan Event
	signal VTSignaler
}

// VTSignaler is the external collaborator that actually talks to the
// kernel VT subsystem: acquiring a VT, switching to another, and
// acknowledging a pending release. A real implementation wraps the
// VT_ACTIVATE/VT_SETMODE/VT_RELDISP ioctls; this package only defines
// the seam and the event sequencing around it.
type VTSignaler interface {
	Activate(vt uint8) error
	AcknowledgeRelease() error
	AcknowledgeAcquire() error
}

// Open acquires vt through signaler and returns a Session that emits
// Events on the returned channel as the kernel signals VT switches.
// The channel is closed by Close.
func Open(vt uint8, signaler VTSignaler) (*Session, chan Event, error) {
	if signaler == nil {
		return nil, nil, fmt.Errorf("tty: nil VTSignaler")
	}
	events := make(chan Event, 4)
	return &Session{vt: vt, events: events, signal: signaler}, events, nil
}

// VT returns the currently owned virtual terminal number.
func (s *Session) VT() uint8 { return s.vt }

// SwitchVT requests switching to target, matching
// swc_tty_switch_vt's guard in handle_switch_vt: callers should only
// invoke this when target differs from the current VT (Session does
// not re-check, since the compositor's binding handler already
// performs that comparison per spec.md's supplemented VT bindings).
func (s *Session) SwitchVT(target uint8) error {
	if err := s.signal.Activate(target); err != nil {
		return fmt.Errorf("tty: switch to vt%d: %w", target, err)
	}
	return nil
}

// NotifyLeaving is called by the platform signal handler when the
// kernel wants to switch this session's VT away. Per spec.md §4.E, the
// release is acknowledged to the kernel before VTLeave is delivered to
// subscribers, exactly as handle_tty_event does on SWC_TTY_VT_LEAVE.
func (s *Session) NotifyLeaving() error {
	if err := s.signal.AcknowledgeRelease(); err != nil {
		return fmt.Errorf("tty: acknowledge vt release: %w", err)
	}
	s.events <- Event{Type: VTLeave}
	return nil
}

// NotifyEntering is called when this session regains the VT. It
// acknowledges the acquisition and emits VTEnter so the DRM master can
// be re-set, matching SWC_TTY_VT_ENTER.
func (s *Session) NotifyEntering() error {
	if err := s.signal.AcknowledgeAcquire(); err != nil {
		return fmt.Errorf("tty: acknowledge vt acquire: %w", err)
	}
	s.events <- Event{Type: VTEnter}
	return nil
}

// Close releases the session's event channel.
func (s *Session) Close() {
	close(s.events)
}
