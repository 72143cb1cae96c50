package tty

import "testing"

type fakeSignaler struct {
	activated      []uint8
	released       int
	acquired       int
	activateErr    error
	acknowledgeErr error
}

func (f *fakeSignaler) Activate(vt uint8) error {
	f.activated = append(f.activated, vt)
	return f.activateErr
}

func (f *fakeSignaler) AcknowledgeRelease() error {
	f.released++
	return nil
}

func (f *fakeSignaler) AcknowledgeAcquire() error {
	f.acquired++
	return f.acknowledgeErr
}

func TestOpenRejectsNilSignaler(t *testing.T) {
	if _, _, err := Open(1, nil); err == nil {
		t.Fatal("expected error for nil VTSignaler")
	}
}

func TestSwitchVTCallsActivate(t *testing.T) {
	sig := &fakeSignaler{}
	s, _, err := Open(1, sig)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SwitchVT(2); err != nil {
		t.Fatalf("SwitchVT: %v", err)
	}
	if len(sig.activated) != 1 || sig.activated[0] != 2 {
		t.Errorf("activated = %v, want [2]", sig.activated)
	}
}

func TestNotifyLeavingEmitsEventAndAcknowledges(t *testing.T) {
	sig := &fakeSignaler{}
	s, events, err := Open(1, sig)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.NotifyLeaving(); err != nil {
		t.Fatalf("NotifyLeaving: %v", err)
	}
	if sig.released != 1 {
		t.Errorf("released = %d, want 1", sig.released)
	}
	select {
	case ev := <-events:
		if ev.Type != VTLeave {
			t.Errorf("event type = %v, want VTLeave", ev.Type)
		}
	default:
		t.Fatal("expected a VTLeave event")
	}
}

func TestNotifyEnteringEmitsEventAndAcknowledges(t *testing.T) {
	sig := &fakeSignaler{}
	s, events, err := Open(1, sig)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.NotifyEntering(); err != nil {
		t.Fatalf("NotifyEntering: %v", err)
	}
	if sig.acquired != 1 {
		t.Errorf("acquired = %d, want 1", sig.acquired)
	}
	select {
	case ev := <-events:
		if ev.Type != VTEnter {
			t.Errorf("event type = %v, want VTEnter", ev.Type)
		}
	default:
		t.Fatal("expected a VTEnter event")
	}
}
