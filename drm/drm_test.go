package drm

import (
	"testing"

	"github.com/wlcore/compositor/output"
)

type fakeMaster struct {
	setCalls, dropCalls int
	setErr, dropErr     error
}

func (f *fakeMaster) SetMaster() error {
	f.setCalls++
	return f.setErr
}

func (f *fakeMaster) DropMaster() error {
	f.dropCalls++
	return f.dropErr
}

func TestOpenRejectsNilHandler(t *testing.T) {
	if _, _, err := Open(nil); err == nil {
		t.Fatal("expected error for nil MasterHandler")
	}
}

func TestSetMasterIsIdempotent(t *testing.T) {
	m := &fakeMaster{}
	s, _, _ := Open(m)

	if err := s.SetMaster(); err != nil {
		t.Fatalf("SetMaster: %v", err)
	}
	if err := s.SetMaster(); err != nil {
		t.Fatalf("SetMaster (second): %v", err)
	}
	if m.setCalls != 1 {
		t.Errorf("setCalls = %d, want 1 (idempotent)", m.setCalls)
	}
	if !s.IsMaster() {
		t.Error("IsMaster() = false, want true")
	}
}

func TestDropMasterIsIdempotent(t *testing.T) {
	m := &fakeMaster{}
	s, _, _ := Open(m)
	s.SetMaster()

	if err := s.DropMaster(); err != nil {
		t.Fatalf("DropMaster: %v", err)
	}
	if err := s.DropMaster(); err != nil {
		t.Fatalf("DropMaster (second): %v", err)
	}
	if m.dropCalls != 1 {
		t.Errorf("dropCalls = %d, want 1 (idempotent)", m.dropCalls)
	}
	if s.IsMaster() {
		t.Error("IsMaster() = true, want false")
	}
}

func TestNotifyPageFlipDeliversEvent(t *testing.T) {
	s, flips, _ := Open(&fakeMaster{})
	s.NotifyPageFlip(output.ID(3), 1234)

	select {
	case ev := <-flips:
		if ev.Output != output.ID(3) || ev.TimeMsec != 1234 {
			t.Errorf("event = %+v, want {Output:3 TimeMsec:1234}", ev)
		}
	default:
		t.Fatal("expected a page-flip event")
	}
}
