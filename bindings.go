package compositor

import "github.com/wlcore/compositor/seat"

// Well-known keysyms the built-in bindings reference. Values match
// libxkbcommon's keysymdef.h / XF86keysym.h, the same constants the
// original compositor.c installs bindings for.
const (
	keysymBackSpace     uint32 = 0xff08
	keysymXF86SwitchVT1 uint32 = 0x1008fe01 // XF86Switch_VT_1; VT_2..VT_12 follow sequentially.
)

// BindingTable is an append-only sequence of key bindings, implementing
// seat.BindingSet so seat.KeyboardState.HandleKey can scan it directly. Bindings are
// never removed for the process lifetime, matching spec.md's "append-
// only" data-model note for key_bindings.
type BindingTable struct {
	bindings []seat.Binding
}

// Add appends b to the table. First-registered bindings are checked
// first by ForEach, matching the original's wl_array scan order.
func (bt *BindingTable) Add(b seat.Binding) {
	bt.bindings = append(bt.bindings, b)
}

// ForEach implements seat.BindingSet.
func (bt *BindingTable) ForEach(fn func(seat.Binding) bool) {
	for _, b := range bt.bindings {
		if !fn(b) {
			return
		}
	}
}

// vtSwitcher is the narrow surface InstallBuiltinBindings needs from a
// tty session: the current VT and the ability to request a switch.
type vtSwitcher interface {
	VT() uint8
	SwitchVT(target uint8) error
}

// InstallBuiltinBindings registers the two built-in bindings spec.md §3
// names: CTRL+ALT+BackSpace calling terminate, and XF86Switch_VT_1
// through XF86Switch_VT_12 (modifiers ANY) calling tty.SwitchVT, each
// guarded by the same "only switch if the target differs from the
// current VT" check as the original's handle_switch_vt.
func InstallBuiltinBindings(bt *BindingTable, vt vtSwitcher, terminate func()) {
	bt.Add(seat.Binding{
		Keysym:    keysymBackSpace,
		Modifiers: seat.ModCtrl | seat.ModAlt,
		Handler: func(timeMsec uint32, keysym uint32) {
			if terminate != nil {
				terminate()
			}
		},
	})

	for i := uint8(1); i <= 12; i++ {
		target := i
		bt.Add(seat.Binding{
			Keysym:    keysymXF86SwitchVT1 + uint32(target-1),
			Modifiers: seat.ModAny,
			Handler: func(timeMsec uint32, keysym uint32) {
				if vt.VT() != target {
					vt.SwitchVT(target)
				}
			},
		})
	}
}
