//go:build darwin

package asyncrt

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Reactor owns a kernel readiness handle (kqueue on Darwin/BSD) and a
// bounded scratch buffer of events, grounded on mio.c in the original C
// implementation. It is driven exclusively by its owning [Executor]'s run
// loop; nothing about it is safe for concurrent use.
type Reactor struct {
	executor *Executor
	kq       int
	closed   bool

	registered map[int]regEntry
	count      int

	eventBuf []unix.Kevent_t
	batch    int

	logger      Logger
	nextTimerID int
}

type regEntry struct {
	waker    Waker
	interest Interest
	active   bool
}

// newReactor acquires a kqueue instance. Per spec.md §7.3, failure to
// acquire the kernel handle is a fatal construction error.
func newReactor(executor *Executor, batch int, logger Logger) (*Reactor, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("asyncrt: kqueue: %w", err)
	}
	unix.CloseOnExec(kq)
	if batch <= 0 {
		batch = 64
	}
	return &Reactor{
		executor:   executor,
		kq:         kq,
		batch:      batch,
		registered: make(map[int]regEntry),
		eventBuf:   make([]unix.Kevent_t, batch),
		logger:     logger,
	}, nil
}

// Register adds fd to the kqueue instance with the given interest, storing
// waker as the registration's cookie. Re-registering an already-registered
// fd is a caller error.
func (r *Reactor) Register(fd int, interest Interest, waker Waker) error {
	if r.closed {
		return ErrReactorClosed
	}
	if fd < 0 {
		return fmt.Errorf("asyncrt: fd %d out of range", fd)
	}
	if r.registered[fd].active {
		return ErrFDAlreadyRegistered
	}

	kevents := interestToKevents(fd, interest, unix.EV_ADD|unix.EV_ENABLE)
	if len(kevents) > 0 {
		if _, err := unix.Kevent(r.kq, kevents, nil, nil); err != nil {
			return fmt.Errorf("asyncrt: kevent add fd %d: %w", fd, err)
		}
	}

	r.registered[fd] = regEntry{waker: waker, interest: interest, active: true}
	r.count++
	return nil
}

// Unregister removes fd from monitoring.
func (r *Reactor) Unregister(fd int) error {
	entry, ok := r.registered[fd]
	if !ok || !entry.active {
		return ErrFDNotRegistered
	}

	kevents := interestToKevents(fd, entry.interest, unix.EV_DELETE)
	if len(kevents) > 0 {
		_, _ = unix.Kevent(r.kq, kevents, nil, nil)
	}

	delete(r.registered, fd)
	r.count--
	return nil
}

// Poll blocks until at least one registered descriptor is ready, then wakes
// each corresponding waiter. If nothing is registered, it returns
// immediately without blocking.
func (r *Reactor) Poll() {
	if r.count == 0 {
		return
	}

	n, err := unix.Kevent(r.kq, nil, r.eventBuf[:r.batch], nil)
	for err == unix.EINTR {
		n, err = unix.Kevent(r.kq, nil, r.eventBuf[:r.batch], nil)
	}
	if err != nil {
		r.fatal(fmt.Errorf("asyncrt: kevent wait: %w", err))
	}

	for i := 0; i < n; i++ {
		fd := int(r.eventBuf[i].Ident)
		entry, ok := r.registered[fd]
		if !ok || !entry.active {
			continue
		}
		entry.waker.Wake()
	}
}

func (r *Reactor) fatal(err error) {
	r.logger.Error("asyncrt: reactor fatal error, terminating", "error", err)
	_ = r.Destroy()
	os.Exit(1)
}

// Destroy closes the kqueue instance.
func (r *Reactor) Destroy() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return unix.Close(r.kq)
}

// RegisterTimer arms a one-shot kqueue timer that fires waker once, after
// d elapses. Unlike Register, the returned id is not a real file
// descriptor: kqueue timers are identified by an arbitrary integer the
// caller chooses, which RegisterTimer allocates from an internal counter.
func (r *Reactor) RegisterTimer(d time.Duration, waker Waker) (int, error) {
	if r.closed {
		return -1, ErrReactorClosed
	}
	r.nextTimerID++
	id := r.nextTimerID

	ev := unix.Kevent_t{
		Ident:  uint64(id),
		Filter: unix.EVFILT_TIMER,
		Flags:  unix.EV_ADD | unix.EV_ONESHOT,
		Fflags: unix.NOTE_NSECONDS,
		Data:   d.Nanoseconds(),
	}
	if _, err := unix.Kevent(r.kq, []unix.Kevent_t{ev}, nil, nil); err != nil {
		return -1, fmt.Errorf("asyncrt: kevent timer add: %w", err)
	}

	r.registered[id] = regEntry{waker: waker, active: true}
	r.count++
	return id, nil
}

// UnregisterTimer releases a timer created by RegisterTimer. EV_ONESHOT
// timers remove themselves from the kqueue instance once they fire, so a
// failing EV_DELETE here (because the timer already fired) is not an
// error.
func (r *Reactor) UnregisterTimer(id int) error {
	entry, ok := r.registered[id]
	if !ok || !entry.active {
		return ErrFDNotRegistered
	}
	ev := unix.Kevent_t{Ident: uint64(id), Filter: unix.EVFILT_TIMER, Flags: unix.EV_DELETE}
	_, _ = unix.Kevent(r.kq, []unix.Kevent_t{ev}, nil, nil)

	delete(r.registered, id)
	r.count--
	return nil
}

func interestToKevents(fd int, interest Interest, flags uint16) []unix.Kevent_t {
	var kevents []unix.Kevent_t
	if interest&Readable != 0 {
		kevents = append(kevents, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: flags})
	}
	if interest&Writable != 0 {
		kevents = append(kevents, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: flags})
	}
	return kevents
}
