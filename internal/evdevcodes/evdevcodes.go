// Package evdevcodes holds the subset of Linux kernel input-event
// constants (linux/input-event-codes.h) the evdev package needs: event types, the key/button code ranges spec.md §4.B
// distinguishes, and the axis codes for wheel scrolling.
package evdevcodes

// Event types (input_event.type).
const (
	EV_SYN uint16 = 0x00
	EV_KEY uint16 = 0x01
	EV_REL uint16 = 0x02
	EV_ABS uint16 = 0x03
)

// EV_SYN codes.
const (
	SYN_REPORT  uint16 = 0
	SYN_DROPPED uint16 = 3
)

// EV_REL codes.
const (
	REL_X      uint16 = 0x00
	REL_Y      uint16 = 0x01
	REL_WHEEL  uint16 = 0x08
	REL_HWHEEL uint16 = 0x06
)

// EV_ABS codes.
const (
	ABS_X uint16 = 0x00
	ABS_Y uint16 = 0x01
)

// Key/button codes bounding the ranges spec.md §4.B uses to tell
// pointer buttons from keyboard keys.
const (
	KEY_ENTER = 28

	BTN_MISC        = 0x100
	BTN_MOUSE       = 0x110
	BTN_GEAR_UP     = 0x151
	BTN_TRIGGER_HAPPY = 0x2c0
)

// IsButtonCode reports whether code identifies a pointer button rather
// than a keyboard key, per spec.md §4.B: codes in BTN_MISC..BTN_GEAR_UP
// or >= BTN_TRIGGER_HAPPY are buttons.
func IsButtonCode(code uint16) bool {
	c := int(code)
	return (c >= BTN_MISC && c <= BTN_GEAR_UP) || c >= BTN_TRIGGER_HAPPY
}
