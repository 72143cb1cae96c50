package compositor

import "errors"

// Sentinel errors for the orchestrator's init-failure and invariant
// paths (spec.md §7), modeled on gogpu-gogpu's errors.go: a flat list
// of package-level sentinels meant to be checked with errors.Is.
var (
	// ErrUnknownOutput is returned when a page-flip completion names an
	// output id that isn't registered. Spec.md §7 calls this a
	// programmer error severe enough to abort; here the caller (the DRM
	// event wiring) gets an error back instead of pending_flips being
	// silently corrupted.
	ErrUnknownOutput = errors.New("compositor: page flip for unknown output")

	// ErrNilRenderer is returned by New when no Renderer is supplied.
	ErrNilRenderer = errors.New("compositor: nil renderer")

	// ErrNilIdler is returned by New when no Idler is supplied.
	ErrNilIdler = errors.New("compositor: nil idler")

	// ErrSurfaceAttachFailed is returned by AttachSurface when the
	// surface list's Attach hook fails — the orchestrator does not
	// insert the surface, mirroring the fix to the original's
	// resource-exhaustion path described in SPEC_FULL.md's
	// supplemented-features section.
	ErrSurfaceAttachFailed = errors.New("compositor: surface attach failed")
)
