// Package asyncrt reactor: registration, poll, and readiness dispatch over
// kernel-level I/O notification.
//
//	reactor.Register(fd, asyncrt.Readable, waker)
//	...
//	reactor.Poll() // blocks until >=1 descriptor fires, then wakes them
//
// The reactor is implemented per-platform:
//   - reactor_linux.go (epoll)
//   - reactor_darwin.go (kqueue)
//
// Always call Unregister before closing a file descriptor: a registration
// left in place after the fd is closed (and possibly recycled by the OS)
// will deliver events against the wrong waiter.
package asyncrt

// Interest is a bitset of I/O readiness conditions. Each platform reactor
// translates Readable and Writable into its kernel poller's own flags.
type Interest uint32

const (
	// Readable requests notification when the descriptor has data to read
	// (or, for a listening socket, a pending connection).
	Readable Interest = 1 << iota
	// Writable requests notification when the descriptor can accept a
	// write without blocking.
	Writable
	// ErrorInterest names an error condition. The reactors add no kernel
	// flag for it; epoll and kqueue report errors on a registered
	// descriptor regardless of the requested interest set.
	ErrorInterest
)
