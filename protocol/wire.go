// Package protocol holds the minimal wire primitives the compositor core
// needs to talk about well-known protocol objects (§6 of the spec): the
// fixed-point number format used for pointer coordinates and scroll
// amounts, object identities, and opcodes. It deliberately stops short of
// a full wire-protocol dispatcher — that piece is named in spec.md §1 as
// an external collaborator with its own narrow interface — but the core
// still needs to name objects and emit/consume the handful of events and
// requests described in §6 (wl_compositor.create_surface/create_region,
// wl_callback.done), so this package carries just that surface.
package protocol

import (
	"encoding/binary"
)

// ObjectID identifies a protocol object. ID 0 is null/invalid; ID 1 is
// always the display object, per the Wayland wire format.
type ObjectID uint32

// Opcode identifies a request or event within an interface.
type Opcode uint16

// Fixed is a 24.8 signed fixed-point number, the wire representation for
// pointer coordinates and scroll-wheel amounts.
type Fixed int32

// FixedFromInt converts a whole number to Fixed.
func FixedFromInt(i int32) Fixed {
	return Fixed(i << 8)
}

// FixedFromFloat converts a float64 to Fixed.
func FixedFromFloat(f float64) Fixed {
	return Fixed(f * 256.0)
}

// Int returns the fixed-point value rounded toward negative infinity
// (an arithmetic shift, so -1.5 becomes -2).
func (f Fixed) Int() int32 {
	return int32(f) >> 8
}

// Float returns the fixed-point value as a float64.
func (f Fixed) Float() float64 {
	return float64(f) / 256.0
}

// Well-known opcodes referenced by §6 of the spec: the compositor global
// (version 3) and the single-shot frame callback.
const (
	CompositorCreateSurface Opcode = 0 // wl_compositor.create_surface(id: new_id<wl_surface>)
	CompositorCreateRegion  Opcode = 1 // wl_compositor.create_region(id: new_id<wl_region>)

	SurfaceFrame Opcode = 3 // wl_surface.frame(callback: new_id<wl_callback>) [request, for reference]

	CallbackDone Opcode = 0 // wl_callback.done(callback_data: uint) [event]
)

// CompositorGlobalVersion is the version advertised for the compositor
// global, per §6.
const CompositorGlobalVersion = 3

// Event is a single outbound protocol event: an object, the opcode that
// identifies it within that object's interface, and its pre-encoded
// argument bytes.
type Event struct {
	Object ObjectID
	Opcode Opcode
	Args   []byte
}

// EventSink is the narrow seam between the core and the (external) wire
// dispatcher: anything that can accept an outbound event. The real
// dispatcher serializes this onto a client's socket; tests use a
// recording fake.
type EventSink interface {
	SendEvent(Event) error
}

// EncodeUint32 appends a little-endian uint32 argument, the common case
// for wl_callback.done's callback_data and similar single-arg events.
func EncodeUint32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(make([]byte, 0, 4), v)
}

// FrameDone builds the wl_callback.done event for the given callback
// object, carrying the frame's presentation timestamp in milliseconds.
func FrameDone(callback ObjectID, timeMsec uint32) Event {
	return Event{Object: callback, Opcode: CallbackDone, Args: EncodeUint32(timeMsec)}
}
