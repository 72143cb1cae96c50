// Package seat aggregates the input devices belonging to one logical
// seat (spec.md component C): it tracks keyboard modifier state through
// an external XKB collaborator, dispatches key events to bindings with
// the original's "consumed modifiers" subtraction, computes pointer
// focus by walking surfaces top-to-bottom, and clamps pointer motion to
// a configured region.
//
// Modeled on internal/platform/wayland/input.go's WlSeat: small state
// structs with mutex-protected fields.
package seat

import (
	"sync"

	"github.com/wlcore/compositor/evdev"
	"github.com/wlcore/compositor/geom"
	"github.com/wlcore/compositor/protocol"
	"github.com/wlcore/compositor/region"
	"github.com/wlcore/compositor/surface"
)

// ModMask is a bitset of modifier keys, matching SWC_MOD_* in
// original_source/libswc/compositor.c.
type ModMask uint32

const (
	ModCtrl ModMask = 1 << iota
	ModAlt
	ModLogo
	ModShift

	// ModAny matches a binding regardless of the currently held
	// modifiers (original: SWC_MOD_ANY).
	ModAny ModMask = 1 << 31
)

// Keymap is the external XKB collaborator contract: keysym lookup and
// modifier-mask computation. A real implementation wraps libxkbcommon;
// this package never reaches into it directly (§1's XKB compiler is an
// explicit out-of-scope black box).
type Keymap interface {
	// Keysym translates an evdev keycode into the keysym currently
	// bound to it, matching xkb_state_key_get_one_sym(state, code+8).
	Keysym(code uint16) uint32

	// EffectiveModifiers returns the currently active modifier mask
	// for code with consumed modifiers already subtracted, matching
	// xkb_state_serialize_mods + xkb_state_mod_mask_remove_consumed.
	EffectiveModifiers(code uint16) ModMask

	// UpdateKey feeds a key press/release into the XKB state machine
	// so subsequent EffectiveModifiers/Keysym calls reflect it.
	UpdateKey(code uint16, pressed bool)
}

// Binding matches a key binding to its handler. Compositor.bindings
// stores these; KeyboardState.HandleKey walks them in registration order so the
// first match wins, exactly as the original's wl_array_for_each scan.
type Binding struct {
	Keysym    uint32
	Modifiers ModMask
	Handler   func(timeMsec uint32, keysym uint32)
}

// BindingSet is the minimal surface KeyboardState needs from the compositor's
// binding table: a forward scan in registration order.
type BindingSet interface {
	ForEach(fn func(Binding) bool)
}

// KeyboardState tracks modifier-aware key dispatch for one seat.
type KeyboardState struct {
	mu       sync.Mutex
	keymap   Keymap
	bindings BindingSet
}

// NewKeyboardState creates keyboard-half state bound to keymap and
// bindings.
func NewKeyboardState(keymap Keymap, bindings BindingSet) *KeyboardState {
	return &KeyboardState{keymap: keymap, bindings: bindings}
}

// HandleKey processes one keyboard event (from evdev.Handler.Key).
// Only PRESSED events are matched against bindings, exactly as
// handle_key: a release never triggers a binding. It returns true when
// a binding handled (swallowed) the key, matching handle_key's bool
// return that the caller uses to decide whether to forward the key to
// a focused client.
func (k *KeyboardState) HandleKey(timeMsec uint32, code uint16, state evdev.KeyState) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.keymap.UpdateKey(code, state == evdev.Pressed)

	if state != evdev.Pressed {
		return false
	}

	keysym := k.keymap.Keysym(code)
	modifiers := k.keymap.EffectiveModifiers(code)

	handled := false
	k.bindings.ForEach(func(b Binding) bool {
		if b.Keysym != keysym {
			return true
		}
		if b.Modifiers == ModAny || b.Modifiers == modifiers {
			b.Handler(timeMsec, keysym)
			handled = true
			return false
		}
		return true
	})
	return handled
}

// PointerState tracks pointer position and focus.
type PointerState struct {
	mu       sync.Mutex
	pos      geom.Point
	region   region.Region // clamp region; empty means unconstrained
	focus    *surface.Surface
	surfaces *surface.List
}

// NewPointerState creates pointer-half state walking surfaces for
// focus resolution.
func NewPointerState(surfaces *surface.List) *PointerState {
	return &PointerState{surfaces: surfaces}
}

// SetRegion constrains subsequent motion to r (spec.md §4.C pointer
// clamping); an empty region disables clamping.
func (p *PointerState) SetRegion(r region.Region) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.region = r
}

// Position returns the current pointer position.
func (p *PointerState) Position() geom.Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos
}

// Focus returns the surface currently receiving pointer events, or nil.
func (p *PointerState) Focus() *surface.Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.focus
}

// Motion applies a relative motion delta (in Fixed-point units,
// dividing out the 24.8 fraction to integer pixels) and recomputes
// focus, matching handle_focus's re-scan on every pointer event.
func (p *PointerState) Motion(dxFixed, dyFixed int32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := geom.Point{
		X: p.pos.X + protocol.Fixed(dxFixed).Int(),
		Y: p.pos.Y + protocol.Fixed(dyFixed).Int(),
	}
	if !p.region.IsEmpty() && !p.region.ContainsPoint(next.X, next.Y) {
		next = p.clamp(next)
	}
	p.pos = next
	p.refreshFocus()
}

// clamp handles a move to pt that leaves p.region. If moving along X
// alone stays inside the region, the pointer takes pt's X and keeps its
// Y; otherwise, if moving along Y alone stays inside, it takes pt's Y
// and keeps its X; otherwise it stays where it was. It does not move
// the pointer to the nearest point on the region's edge, because the
// adapter's region exposes no nearest-point query.
func (p *PointerState) clamp(pt geom.Point) geom.Point {
	if p.region.ContainsPoint(pt.X, p.pos.Y) {
		return geom.Point{X: pt.X, Y: p.pos.Y}
	}
	if p.region.ContainsPoint(p.pos.X, pt.Y) {
		return geom.Point{X: p.pos.X, Y: pt.Y}
	}
	return p.pos
}

// refreshFocus walks surfaces front-to-back and focuses the first
// whose input region contains the pointer, matching handle_focus.
func (p *PointerState) refreshFocus() {
	for _, s := range p.surfaces.All() {
		localX := p.pos.X - s.Geometry.X
		localY := p.pos.Y - s.Geometry.Y
		if s.State.Input.ContainsPoint(localX, localY) {
			p.focus = s
			return
		}
	}
	p.focus = nil
}

// Seat bundles one keyboard and one pointer state under a name, per
// spec.md's default-seat supplement ("seat0").
type Seat struct {
	Name     string
	Keyboard *KeyboardState
	Pointer  *PointerState
}

// New creates a named seat.
func New(name string, keyboard *KeyboardState, pointer *PointerState) *Seat {
	return &Seat{Name: name, Keyboard: keyboard, Pointer: pointer}
}
