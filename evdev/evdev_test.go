package evdev

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/wlcore/compositor/internal/evdevcodes"
)

// bufReader is a Reader backed by a fixed byte slice, returning
// ErrAgain once it is exhausted — a fake for the non-blocking fd.
type bufReader struct {
	data []byte
}

func (r *bufReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, ErrAgain
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func encodeRaw(sec, usec int64, typ, code uint16, value int32) []byte {
	buf := make([]byte, eventSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(sec))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(usec))
	binary.LittleEndian.PutUint16(buf[16:18], typ)
	binary.LittleEndian.PutUint16(buf[18:20], code)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(value))
	return buf
}

type recordingHandler struct {
	keys    []uint16
	keyStates []KeyState
	buttons []uint16
	axes    []Axis
	amounts []int32
	motions [][2]int32
}

func (h *recordingHandler) Key(timeMsec uint32, code uint16, state KeyState) {
	h.keys = append(h.keys, code)
	h.keyStates = append(h.keyStates, state)
}

func (h *recordingHandler) Button(timeMsec uint32, code uint16, state KeyState) {
	h.buttons = append(h.buttons, code)
}

func (h *recordingHandler) Axis(timeMsec uint32, axis Axis, amount int32) {
	h.axes = append(h.axes, axis)
	h.amounts = append(h.amounts, amount)
}

func (h *recordingHandler) RelativeMotion(timeMsec uint32, dxFixed, dyFixed int32) {
	h.motions = append(h.motions, [2]int32{dxFixed, dyFixed})
}

func TestPollDispatchesKeyPressAndRelease(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_KEY, evdevcodes.KEY_ENTER, 1))
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_SYN, evdevcodes.SYN_REPORT, 0))
	buf.Write(encodeRaw(1, 1000, evdevcodes.EV_KEY, evdevcodes.KEY_ENTER, 0))
	buf.Write(encodeRaw(1, 1000, evdevcodes.EV_SYN, evdevcodes.SYN_REPORT, 0))

	h := &recordingHandler{}
	d := New("kbd0", &bufReader{data: buf.Bytes()}, h, CapabilityKeyboard)

	if err := d.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	if len(h.keys) != 2 || h.keys[0] != evdevcodes.KEY_ENTER || h.keys[1] != evdevcodes.KEY_ENTER {
		t.Fatalf("keys = %v, want two KEY_ENTER events", h.keys)
	}
	if h.keyStates[0] != Pressed || h.keyStates[1] != Released {
		t.Errorf("keyStates = %v, want [Pressed Released]", h.keyStates)
	}
}

func TestPollDispatchesButtonNotKey(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_KEY, evdevcodes.BTN_MOUSE, 1))
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_SYN, evdevcodes.SYN_REPORT, 0))

	h := &recordingHandler{}
	d := New("mouse0", &bufReader{data: buf.Bytes()}, h, CapabilityPointer)
	if err := d.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	if len(h.keys) != 0 {
		t.Errorf("keys = %v, want none", h.keys)
	}
	if len(h.buttons) != 1 || h.buttons[0] != evdevcodes.BTN_MOUSE {
		t.Fatalf("buttons = %v, want [BTN_MOUSE]", h.buttons)
	}
}

func TestPollCoalescesRelativeMotion(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_REL, evdevcodes.REL_X, 5))
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_REL, evdevcodes.REL_Y, -3))
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_SYN, evdevcodes.SYN_REPORT, 0))

	h := &recordingHandler{}
	d := New("mouse0", &bufReader{data: buf.Bytes()}, h, CapabilityPointer)
	if err := d.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	if len(h.motions) != 1 {
		t.Fatalf("motions = %v, want exactly one coalesced event", h.motions)
	}
	if h.motions[0][0] != 5<<8 || h.motions[0][1] != -3<<8 {
		t.Errorf("motion = %v, want [%d %d]", h.motions[0], 5<<8, -3<<8)
	}
}

func TestPollFlushesMotionBeforeKeyEvent(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_REL, evdevcodes.REL_X, 2))
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_KEY, evdevcodes.BTN_MOUSE, 1))

	h := &recordingHandler{}
	d := New("mouse0", &bufReader{data: buf.Bytes()}, h, CapabilityPointer)
	if err := d.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	if len(h.motions) != 1 {
		t.Fatalf("motions = %v, want the pending motion flushed before the button", h.motions)
	}
	if len(h.buttons) != 1 {
		t.Fatalf("buttons = %v, want one button event", h.buttons)
	}
}

func TestPollHandlesSynDroppedResync(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_SYN, evdevcodes.SYN_DROPPED, 0))
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_KEY, evdevcodes.KEY_ENTER, 1))
	buf.Write(encodeRaw(1, 0, evdevcodes.EV_SYN, evdevcodes.SYN_REPORT, 0))
	buf.Write(encodeRaw(1, 1, evdevcodes.EV_KEY, evdevcodes.KEY_ENTER, 0))
	buf.Write(encodeRaw(1, 1, evdevcodes.EV_SYN, evdevcodes.SYN_REPORT, 0))

	h := &recordingHandler{}
	d := New("kbd0", &bufReader{data: buf.Bytes()}, h, CapabilityKeyboard)
	if err := d.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	// Everything up to and including the resyncing SYN_REPORT is
	// dropped; only the key event after resync completes is delivered.
	if len(h.keys) != 1 || h.keyStates[0] != Released {
		t.Fatalf("keys = %v states = %v, want one Released KEY_ENTER after resync", h.keys, h.keyStates)
	}
}

func TestPollNoDataReturnsImmediately(t *testing.T) {
	h := &recordingHandler{}
	d := New("kbd0", &bufReader{}, h, CapabilityKeyboard)
	if err := d.Poll(); err != nil {
		t.Fatalf("Poll on empty reader: %v", err)
	}
	if len(h.keys) != 0 || len(h.motions) != 0 {
		t.Errorf("expected no events from an empty reader")
	}
}

func TestDetectCapabilities(t *testing.T) {
	tests := []struct {
		name                                       string
		hasKeyEnter, hasRelX, hasRelY, hasBtnMouse bool
		want                                       Capability
	}{
		{"keyboard only", true, false, false, false, CapabilityKeyboard},
		{"pointer only", false, true, true, true, CapabilityPointer},
		{"incomplete pointer bits", false, true, false, true, 0},
		{"both", true, true, true, true, CapabilityKeyboard | CapabilityPointer},
		{"neither", false, false, false, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCapabilities(tt.hasKeyEnter, tt.hasRelX, tt.hasRelY, tt.hasBtnMouse)
			if got != tt.want {
				t.Errorf("DetectCapabilities(%v,%v,%v,%v) = %v, want %v",
					tt.hasKeyEnter, tt.hasRelX, tt.hasRelY, tt.hasBtnMouse, got, tt.want)
			}
		})
	}
}
