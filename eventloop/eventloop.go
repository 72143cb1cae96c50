// Package eventloop implements the single-threaded, cooperative event
// loop spec.md §5 describes: an epoll instance multiplexing
// fd-readable sources (evdev, tty signal fd, DRM event fd) plus a
// one-shot idle queue for deferred work like scheduled repaints.
// Callbacks run to completion with no locking, matching §5's
// concurrency model exactly.
//
// Grounded on golang.org/x/sys/unix's epoll wrappers, the same package
// gogpu-gogpu, gioui-gio, and gazed-vu all depend on for their own
// platform layers (though none of them build an epoll loop themselves
// — this is this module's own application of that shared dependency).
package eventloop

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Callback is invoked when its registered fd becomes readable.
type Callback func() error

// Loop is an epoll-backed dispatcher. It is not safe for concurrent
// use — spec.md §5 assumes a single thread drives it.
type Loop struct {
	epfd      int
	callbacks map[int32]Callback
	idle      []func()
	closed    bool
}

// New creates an epoll instance.
func New() (*Loop, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("eventloop: epoll_create1: %w", err)
	}
	return &Loop{epfd: epfd, callbacks: make(map[int32]Callback)}, nil
}

// AddFD registers fd for readability notifications, invoking cb each
// time epoll reports it ready. Sources named in spec.md §5 — evdev
// device fds, the tty signal fd, the DRM event fd — are all added this
// way by the host that wires them together.
func (l *Loop) AddFD(fd int, cb Callback) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("eventloop: epoll_ctl add fd %d: %w", fd, err)
	}
	l.callbacks[int32(fd)] = cb
	return nil
}

// RemoveFD deregisters fd, e.g. when an evdev device disappears.
func (l *Loop) RemoveFD(fd int) error {
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("eventloop: epoll_ctl del fd %d: %w", fd, err)
	}
	delete(l.callbacks, int32(fd))
	return nil
}

// Idle schedules fn to run once, after the current batch of
// fd-readable callbacks finishes, and before the loop blocks in epoll
// again. This is the coalescing mechanism spec.md's "scheduled update"
// idle task relies on: Compositor.ScheduleUpdate enqueues through here
// exactly once per repaint batch, matching
// swc_compositor_schedule_update's "already queued" boolean check.
func (l *Loop) Idle(fn func()) {
	l.idle = append(l.idle, fn)
}

// Run blocks processing epoll events and the idle queue until Close is
// called. timeoutMsec bounds each epoll_wait call so idle tasks queued
// with no fd activity still get a chance to run promptly; -1 blocks
// indefinitely between fd events.
func (l *Loop) Run(timeoutMsec int) error {
	events := make([]unix.EpollEvent, 16)
	for !l.closed {
		n, err := unix.EpollWait(l.epfd, events, timeoutMsec)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("eventloop: epoll_wait: %w", err)
		}
		for i := 0; i < n; i++ {
			cb, ok := l.callbacks[events[i].Fd]
			if !ok {
				continue
			}
			if err := cb(); err != nil {
				return err
			}
		}
		l.runIdle()
	}
	return nil
}

// runIdle drains and runs the idle queue. Tasks queued by a callback
// while idle tasks are running are run in the same pass, matching a
// cooperative loop that runs queued work to completion before
// blocking again.
func (l *Loop) runIdle() {
	for len(l.idle) > 0 {
		task := l.idle[0]
		l.idle = l.idle[1:]
		task()
	}
}

// Close releases the epoll fd and stops Run on its next iteration.
func (l *Loop) Close() error {
	l.closed = true
	return unix.Close(l.epfd)
}
