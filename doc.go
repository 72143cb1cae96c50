// Package compositor implements the frame-update orchestrator and
// input-dispatch core of a DRM/evdev Wayland compositor: damage
// accumulation across a z-ordered surface list, per-output update
// scheduling and page-flip bookkeeping, the VT/DRM master-handoff
// state machine, and modifier-aware key-binding dispatch.
//
// The wire-protocol dispatcher, the concrete renderer, the DRM/GBM
// framebuffer allocator, udev device enumeration, and the XKB keymap
// compiler are treated as external collaborators with narrow
// interfaces, consumed through the renderer, drm, tty, evdev, and seat
// packages rather than implemented here.
//
// # Quick start
//
// A host wires a Compositor to its collaborators and drives it from an
// eventloop.Loop:
//
//	r := softrenderer.New()
//	loop, _ := eventloop.New()
//	c, err := compositor.New(compositor.DefaultConfig(), r, loop, sink)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c.AddOutput(output.New(0, geometry, plane))
//	loop.Run(-1)
//
// # Configuration
//
// Use Config to customize seat name, default VT, and the terminate
// hook the built-in CTRL+ALT+BackSpace binding calls:
//
//	cfg := compositor.DefaultConfig().
//	    WithSeatName("seat0").
//	    WithTerminate(func() { os.Exit(0) })
package compositor
