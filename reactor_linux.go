//go:build linux

package asyncrt

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// maxFDs bounds direct-indexed fd storage, matching the teacher's
// direct-indexing poller design (poller_linux.go) without its concurrency
// machinery: the reactor is only ever touched from the executor's single
// goroutine, so no mutex or atomic version counter is needed here.
const maxFDs = 65536

// Reactor owns a kernel readiness handle (epoll on Linux) and a bounded
// scratch buffer of events, grounded on mio.c in the original C
// implementation. It is driven exclusively by its owning [Executor]'s
// run loop; nothing about it is safe for concurrent use.
type Reactor struct {
	executor *Executor
	epfd     int
	closed   bool

	registered [maxFDs]regEntry
	count      int

	eventBuf []unix.EpollEvent
	batch    int

	logger Logger
}

type regEntry struct {
	waker  Waker
	active bool
}

// newReactor acquires an epoll instance. Per spec.md §7.3, failure to
// acquire the kernel handle is a fatal construction error: the caller is
// expected to log and terminate, mirroring mio_create's exit(1) on
// epoll_create1 failure.
func newReactor(executor *Executor, batch int, logger Logger) (*Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("asyncrt: epoll_create1: %w", err)
	}
	if batch <= 0 {
		batch = 64
	}
	return &Reactor{
		executor: executor,
		epfd:     epfd,
		batch:    batch,
		eventBuf: make([]unix.EpollEvent, batch),
		logger:   logger,
	}, nil
}

// Register adds fd to the epoll instance with the given interest, storing
// waker as the registration's cookie (spec.md §4.3). Re-registering
// an already-registered fd is a caller error, reported rather than silently
// accepted, matching the original mio_register's single epoll_ctl ADD call.
func (r *Reactor) Register(fd int, interest Interest, waker Waker) error {
	if r.closed {
		return ErrReactorClosed
	}
	if fd < 0 || fd >= maxFDs {
		return fmt.Errorf("asyncrt: fd %d out of range", fd)
	}
	if r.registered[fd].active {
		return ErrFDAlreadyRegistered
	}

	ev := unix.EpollEvent{
		Events: interestToEpoll(interest),
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("asyncrt: epoll_ctl add fd %d: %w", fd, err)
	}

	r.registered[fd] = regEntry{waker: waker, active: true}
	r.count++
	return nil
}

// Unregister removes fd from monitoring. Unregistering an fd with no active
// registration is a caller error.
func (r *Reactor) Unregister(fd int) error {
	if fd < 0 || fd >= maxFDs {
		return fmt.Errorf("asyncrt: fd %d out of range", fd)
	}
	if !r.registered[fd].active {
		return ErrFDNotRegistered
	}

	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("asyncrt: epoll_ctl del fd %d: %w", fd, err)
	}

	r.registered[fd] = regEntry{}
	r.count--
	return nil
}

// Poll blocks until at least one registered descriptor is ready, then wakes
// each corresponding waiter. If nothing is registered, it returns
// immediately without blocking — this is what lets Executor.Run terminate
// instead of blocking forever on an empty reactor (spec.md §4.2, §4.3).
//
// A kernel error from epoll_wait is fatal: the reactor cannot maintain its
// contract, so it logs and terminates the process, mirroring mio_poll's
// exit(1) in the original.
func (r *Reactor) Poll() {
	if r.count == 0 {
		return
	}

	n, err := unix.EpollWait(r.epfd, r.eventBuf[:r.batch], -1)
	for err == unix.EINTR {
		n, err = unix.EpollWait(r.epfd, r.eventBuf[:r.batch], -1)
	}
	if err != nil {
		r.fatal(fmt.Errorf("asyncrt: epoll_wait: %w", err))
	}

	for i := 0; i < n; i++ {
		fd := int(r.eventBuf[i].Fd)
		if fd < 0 || fd >= maxFDs || !r.registered[fd].active {
			continue
		}
		r.registered[fd].waker.Wake()
	}
}

func (r *Reactor) fatal(err error) {
	r.logger.Error("asyncrt: reactor fatal error, terminating", "error", err)
	_ = r.Destroy()
	os.Exit(1)
}

// Destroy closes the epoll instance.
func (r *Reactor) Destroy() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return unix.Close(r.epfd)
}

// RegisterTimer arms a one-shot kernel timer (timerfd) that fires waker
// once, after d elapses, without blocking the caller. The returned id must
// be passed to UnregisterTimer once the timer future settles, to release
// the kernel timer and its fd.
func (r *Reactor) RegisterTimer(d time.Duration, waker Waker) (int, error) {
	if r.closed {
		return -1, ErrReactorClosed
	}
	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, 0)
	if err != nil {
		return -1, fmt.Errorf("asyncrt: timerfd_create: %w", err)
	}
	spec := unix.ItimerSpec{Value: unix.NsecToTimespec(d.Nanoseconds())}
	if err := unix.TimerfdSettime(fd, 0, &spec, nil); err != nil {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("asyncrt: timerfd_settime: %w", err)
	}
	if err := r.Register(fd, Readable, waker); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

// UnregisterTimer releases a timer created by RegisterTimer.
func (r *Reactor) UnregisterTimer(id int) error {
	if err := r.Unregister(id); err != nil {
		return err
	}
	return unix.Close(id)
}

func interestToEpoll(interest Interest) uint32 {
	var ev uint32
	if interest&Readable != 0 {
		ev |= unix.EPOLLIN
	}
	if interest&Writable != 0 {
		ev |= unix.EPOLLOUT
	}
	return ev
}
