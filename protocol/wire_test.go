package protocol

import "testing"

func TestFixedFromInt(t *testing.T) {
	f := FixedFromInt(5)
	if f.Int() != 5 {
		t.Errorf("FixedFromInt(5).Int() = %d, want 5", f.Int())
	}
}

// S6 from spec.md: wheel amount = -10 * (1<<8) in 24.8 fixed point = -2560.
func TestFixedWheelAmount(t *testing.T) {
	const axisStepDistance = 10
	amount := Fixed(-axisStepDistance * int32(FixedFromInt(1)))
	if amount != -2560 {
		t.Errorf("wheel amount = %d, want -2560", amount)
	}
}

func TestFrameDoneEvent(t *testing.T) {
	ev := FrameDone(7, 42)
	if ev.Object != 7 || ev.Opcode != CallbackDone {
		t.Errorf("FrameDone built wrong header: %+v", ev)
	}
	if len(ev.Args) != 4 {
		t.Errorf("FrameDone args length = %d, want 4", len(ev.Args))
	}
}
