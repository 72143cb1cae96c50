// Package drm manages the DRM session backing the compositor's
// outputs (spec.md component F): acquiring/dropping the DRM master
// lease in step with VT ownership, and delivering page-flip completion
// events that drive the orchestrator's pending-flip bookkeeping.
//
// Grounded on original_source/libswc/compositor.c's handle_drm_event
// (SWC_DRM_PAGE_FLIP carries the output and a completion timestamp)
// and handle_tty_event's calls into swc_drm_set_master/drop_master.
package drm

import (
	"fmt"

	"github.com/wlcore/compositor/output"
)

// PageFlipEvent reports that one output's previously submitted flip
// has completed.
type PageFlipEvent struct {
	Output   output.ID
	TimeMsec uint32
}

// MasterHandler is the external collaborator that actually issues
// DRM_IOCTL_SET_MASTER/DRM_IOCTL_DROP_MASTER; this package sequences
// calls into it but does not perform the ioctls itself (§1 treats
// this as DRM/GBM allocator territory, out of scope).
type MasterHandler interface {
	SetMaster() error
	DropMaster() error
}

// Session tracks this process's DRM master ownership and relays
// page-flip completions from the kernel.
type Session struct {
	master   MasterHandler
	flips    chan PageFlipEvent
	isMaster bool
}

// Open creates a Session around master and acquires the DRM master
// lease through it, so a new Session starts out holding the lease (the
// ACTIVE state NewVTDRMCoupler starts in).
func Open(master MasterHandler) (*Session, chan PageFlipEvent, error) {
	if master == nil {
		return nil, nil, fmt.Errorf("drm: nil MasterHandler")
	}
	if err := master.SetMaster(); err != nil {
		return nil, nil, fmt.Errorf("drm: set master: %w", err)
	}
	flips := make(chan PageFlipEvent, 16)
	return &Session{master: master, flips: flips, isMaster: true}, flips, nil
}

// SetMaster acquires the DRM master lease, called on tty.VTEnter.
func (s *Session) SetMaster() error {
	if s.isMaster {
		return nil
	}
	if err := s.master.SetMaster(); err != nil {
		return fmt.Errorf("drm: set master: %w", err)
	}
	s.isMaster = true
	return nil
}

// DropMaster releases the DRM master lease, called on tty.VTLeave.
func (s *Session) DropMaster() error {
	if !s.isMaster {
		return nil
	}
	if err := s.master.DropMaster(); err != nil {
		return fmt.Errorf("drm: drop master: %w", err)
	}
	s.isMaster = false
	return nil
}

// IsMaster reports whether this session currently holds the DRM
// master lease.
func (s *Session) IsMaster() bool { return s.isMaster }

// NotifyPageFlip is called by the platform's DRM event fd handler when
// a page flip completes; it forwards the event to the channel Open
// returned for the orchestrator to consume.
func (s *Session) NotifyPageFlip(id output.ID, timeMsec uint32) {
	s.flips <- PageFlipEvent{Output: id, TimeMsec: timeMsec}
}

// Close releases the page-flip event channel.
func (s *Session) Close() {
	close(s.flips)
}
