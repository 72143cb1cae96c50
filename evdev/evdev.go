// Package evdev implements the per-file-descriptor input device pump
// named in spec.md component B: it drains raw kernel input_event
// records from a non-blocking fd, translates them into the semantic
// key/button/axis/relative-motion callbacks the seat consumes, and
// tracks SYN_DROPPED resync the same way the original swc_evdev_device
// did (_examples/original_source/libswc/evdev_device.c).
//
// Raw events are decoded field-by-field with encoding/binary, the same
// technique internal/platform/wayland/wire.go uses for Wayland wire
// messages — this package is the evdev-side counterpart of that codec.
package evdev

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/wlcore/compositor/internal/evdevcodes"
)

// axisStepDistance is the distance, in the same units as pointer
// motion, a single wheel detent scrolls (spec.md §4.B / scenario S6;
// original_source/libswc/evdev_device.c: AXIS_STEP_DISTANCE).
const axisStepDistance = 10

// eventSize is sizeof(struct input_event) on a 64-bit Linux host: two
// 8-byte timeval fields, a 2-byte type, a 2-byte code, and a 4-byte
// value — 24 bytes, already 8-byte aligned.
const eventSize = 24

// KeyState is PRESSED or RELEASED, matching the wl_keyboard/wl_pointer
// wire enums spec.md references.
type KeyState uint32

const (
	Released KeyState = 0
	Pressed  KeyState = 1
)

// Axis identifies a scroll axis.
type Axis uint32

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Capability is a bit in a device's capability set.
type Capability uint32

const (
	CapabilityKeyboard Capability = 1 << iota
	CapabilityPointer
	CapabilityTouch
)

// Handler receives the semantic events a Device produces. Device calls
// it without a nil check, so the Handler passed to New must be non-nil.
type Handler interface {
	Key(timeMsec uint32, code uint16, state KeyState)
	Button(timeMsec uint32, code uint16, state KeyState)
	Axis(timeMsec uint32, axis Axis, amount int32)
	RelativeMotion(timeMsec uint32, dxFixed, dyFixed int32)
}

// Reader is the minimal fd surface Device needs: non-blocking reads
// that return (0, ErrAgain) when no data is pending. A host wraps the
// launcher bridge's opened fd (for example with unix.Read, mapping
// EAGAIN to ErrAgain); tests supply a buffered fake.
type Reader interface {
	Read(p []byte) (n int, err error)
}

// ErrAgain is returned by a Reader when no data is currently available
// — the non-blocking-read equivalent of EAGAIN that the original pump
// used to break its drain loop.
var ErrAgain = errors.New("evdev: no data available")

// motionAccumulator coalesces REL_X/REL_Y within one SYN frame into a
// single relative_motion callback (spec.md §4.B, invariant in §8: after
// any sequence ending in a non-motion event, Pending is false).
type motionAccumulator struct {
	dx, dy  int32
	pending bool
}

func (m *motionAccumulator) flush(h Handler, timeMsec uint32) {
	if !m.pending {
		return
	}
	h.RelativeMotion(timeMsec, m.dx<<8, m.dy<<8)
	m.dx, m.dy = 0, 0
	m.pending = false
}

// Device pumps one evdev character device's events to a Handler.
type Device struct {
	name         string
	reader       Reader
	handler      Handler
	capabilities Capability
	motion       motionAccumulator

	// lastEventTime is the most recently observed event timestamp.
	// Tracking it explicitly sidesteps the open question in spec.md §9:
	// the original source reads event.time after the EAGAIN break even
	// when the loop never iterated. We only flush pending motion using
	// a timestamp we actually saw.
	lastEventTime uint32
	resyncing     bool
}

// New creates a Device. capabilities should be the result of probing
// the device (see DetectCapabilities) before construction; the original
// swc_evdev_device_new does this probing itself via libevdev, which this
// package does not depend on.
func New(name string, reader Reader, handler Handler, capabilities Capability) *Device {
	return &Device{name: name, reader: reader, handler: handler, capabilities: capabilities}
}

// Name returns the device's descriptive name, for logging.
func (d *Device) Name() string { return d.name }

// Capabilities returns the device's detected capability bitset.
func (d *Device) Capabilities() Capability { return d.capabilities }

// rawEvent is the decoded form of one struct input_event.
type rawEvent struct {
	sec, usec int64
	typ, code uint16
	value     int32
}

func timeToMsec(sec, usec int64) uint32 {
	return uint32(sec*1000 + usec/1000)
}

func decodeEvent(buf []byte) rawEvent {
	return rawEvent{
		sec:   int64(binary.LittleEndian.Uint64(buf[0:8])),
		usec:  int64(binary.LittleEndian.Uint64(buf[8:16])),
		typ:   binary.LittleEndian.Uint16(buf[16:18]),
		code:  binary.LittleEndian.Uint16(buf[18:20]),
		value: int32(binary.LittleEndian.Uint32(buf[20:24])),
	}
}

func isMotionEvent(ev rawEvent) bool {
	switch ev.typ {
	case evdevcodes.EV_REL:
		return ev.code == evdevcodes.REL_X || ev.code == evdevcodes.REL_Y
	case evdevcodes.EV_ABS:
		return ev.code == evdevcodes.ABS_X || ev.code == evdevcodes.ABS_Y
	}
	return false
}

// Poll drains every event currently available on the device's fd,
// dispatching to the handler, and returns when the reader reports
// ErrAgain (no more data pending) or a real I/O error. It never blocks.
func (d *Device) Poll() error {
	buf := make([]byte, eventSize)
	readAny := false

	for {
		n, err := d.reader.Read(buf)
		if err != nil {
			if errors.Is(err, ErrAgain) {
				break
			}
			return fmt.Errorf("evdev: read %s: %w", d.name, err)
		}
		if n < eventSize {
			// Short read of a partial record; the partial bytes are
			// discarded and this drain ends.
			break
		}

		ev := decodeEvent(buf)
		timeMsec := timeToMsec(ev.sec, ev.usec)
		d.lastEventTime = timeMsec
		readAny = true

		if ev.typ == evdevcodes.EV_SYN && ev.code == evdevcodes.SYN_DROPPED {
			d.resyncing = true
			continue
		}
		if d.resyncing {
			if ev.typ == evdevcodes.EV_SYN && ev.code == evdevcodes.SYN_REPORT {
				d.resyncing = false
			}
			continue
		}

		if !isMotionEvent(ev) {
			d.motion.flush(d.handler, timeMsec)
		}

		d.dispatch(ev, timeMsec)
	}

	if readAny {
		d.motion.flush(d.handler, d.lastEventTime)
	}
	return nil
}

func (d *Device) dispatch(ev rawEvent, timeMsec uint32) {
	switch ev.typ {
	case evdevcodes.EV_KEY:
		d.dispatchKey(ev, timeMsec)
	case evdevcodes.EV_REL:
		d.dispatchRel(ev, timeMsec)
	case evdevcodes.EV_ABS:
		// Reserved for touch devices; no-op per spec.md §4.B.
	}
}

func (d *Device) dispatchKey(ev rawEvent, timeMsec uint32) {
	state := Released
	if ev.value != 0 {
		state = Pressed
	}
	if evdevcodes.IsButtonCode(ev.code) {
		d.handler.Button(timeMsec, ev.code, state)
	} else {
		d.handler.Key(timeMsec, ev.code, state)
	}
}

func (d *Device) dispatchRel(ev rawEvent, timeMsec uint32) {
	switch ev.code {
	case evdevcodes.REL_X:
		d.motion.dx += ev.value
		d.motion.pending = true
	case evdevcodes.REL_Y:
		d.motion.dy += ev.value
		d.motion.pending = true
	case evdevcodes.REL_WHEEL:
		// Vertical wheel is inverted to match "scroll down = positive".
		d.handler.Axis(timeMsec, AxisVertical, -axisStepDistance*ev.value<<8)
	case evdevcodes.REL_HWHEEL:
		d.handler.Axis(timeMsec, AxisHorizontal, axisStepDistance*ev.value<<8)
	}
}

// DetectCapabilities classifies a device from the raw EV_KEY/EV_REL
// support bits it reports, per spec.md §4.B: KEYBOARD if it has
// KEY_ENTER; POINTER if it has REL_X, REL_Y, and any mouse button.
// hasKeyEnter, hasRelX, hasRelY, and hasBtnMouse are the results of
// querying the kernel's EVIOCGBIT ioctl, which this package does not
// perform itself (an external, device-enumeration concern).
func DetectCapabilities(hasKeyEnter, hasRelX, hasRelY, hasBtnMouse bool) Capability {
	var caps Capability
	if hasKeyEnter {
		caps |= CapabilityKeyboard
	}
	if hasRelX && hasRelY && hasBtnMouse {
		caps |= CapabilityPointer
	}
	return caps
}
