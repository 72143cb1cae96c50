// Package launcher is the privileged device-open bridge named in
// spec.md component D: the compositor itself typically runs unprivileged,
// so opening DRM/evdev character devices goes through a small setuid or
// logind-mediated helper (original: swc_launch_open_device). This
// package models that seam as a narrow interface plus a direct-open
// implementation for the case where the caller already holds the
// necessary privilege (e.g. running as root in a container, or a test).
package launcher

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Opener opens privileged device files by path. Implementations may
// shell out to a setuid helper, talk to logind over D-Bus, or (Direct)
// call unix.Open directly when the caller already has the rights.
type Opener interface {
	OpenDevice(path string, flags int) (fd int, err error)
}

// Direct opens device files with unix.Open in the caller's own
// process, for hosts that already run the compositor with sufficient
// privilege.
type Direct struct{}

// OpenDevice opens path with flags, always adding O_CLOEXEC so the fd
// does not leak across the exec boundary if this process ever execs a
// helper itself (original: O_RDWR | O_NONBLOCK | O_CLOEXEC).
func (Direct) OpenDevice(path string, flags int) (int, error) {
	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, fmt.Errorf("launcher: open %s: %w", path, err)
	}
	return fd, nil
}

// OpenEvdevDevice opens an evdev character device the way
// swc_evdev_device_new does: read/write, non-blocking.
func OpenEvdevDevice(o Opener, path string) (int, error) {
	return o.OpenDevice(path, unix.O_RDWR|unix.O_NONBLOCK)
}

// CloseDevice closes fd, logging nothing itself — callers decide how
// to report a close failure, matching the original's fire-and-forget
// close() at teardown.
func CloseDevice(fd int) error {
	return unix.Close(fd)
}
