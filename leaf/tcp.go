package leaf

import (
	"github.com/joeycumines/asyncrt"
	"golang.org/x/sys/unix"
)

const (
	tcpConnecting = iota
	tcpReading
	tcpDone
)

// DialRead returns a future that opens a non-blocking TCP connection to sa,
// optionally writes request first, then reads until the peer closes the
// connection or the read buffer reaches bufSize, completing with the bytes
// read so far.
//
// Every stage registers with the reactor instead of blocking: the connect
// stage waits for the socket to become writable (the non-blocking connect
// contract), then switches the same fd to readable interest for the read
// stage.
func DialRead(sa unix.Sockaddr, request []byte, bufSize int) *asyncrt.Future {
	state := tcpConnecting
	started := false
	fd := -1
	written := false
	buf := make([]byte, 0, bufSize)

	return asyncrt.New(func(self *asyncrt.Future, reactor *asyncrt.Reactor, waker asyncrt.Waker) asyncrt.State {
		switch state {
		case tcpConnecting:
			if !started {
				started = true
				sock, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK, 0)
				if err != nil {
					self.Errcode = ErrTCPSocket
					return asyncrt.Failure
				}
				fd = sock

				if err := unix.Connect(fd, sa); err != nil && err != unix.EINPROGRESS {
					_ = unix.Close(fd)
					self.Errcode = ErrTCPConnect
					return asyncrt.Failure
				}
				if err := reactor.Register(fd, asyncrt.Writable, waker); err != nil {
					_ = unix.Close(fd)
					self.Errcode = ErrTCPConnect
					return asyncrt.Failure
				}
				return asyncrt.Pending
			}

			errno, sockErr := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
			_ = reactor.Unregister(fd)
			if sockErr != nil || errno != 0 {
				_ = unix.Close(fd)
				self.Errcode = ErrTCPConnect
				return asyncrt.Failure
			}

			if len(request) > 0 && !written {
				_, _ = unix.Write(fd, request)
				written = true
			}
			if err := reactor.Register(fd, asyncrt.Readable, waker); err != nil {
				_ = unix.Close(fd)
				self.Errcode = ErrTCPConnect
				return asyncrt.Failure
			}
			state = tcpReading
			return asyncrt.Pending

		case tcpReading:
			chunk := make([]byte, bufSize)
			n, err := unix.Read(fd, chunk)
			switch {
			case err == unix.EAGAIN:
				return asyncrt.Pending
			case err != nil:
				_ = reactor.Unregister(fd)
				_ = unix.Close(fd)
				self.Errcode = ErrTCPRead
				return asyncrt.Failure
			case n == 0:
				_ = reactor.Unregister(fd)
				_ = unix.Close(fd)
				state = tcpDone
				self.Ok = buf
				return asyncrt.Completed
			}

			buf = append(buf, chunk[:n]...)
			if len(buf) >= bufSize {
				_ = reactor.Unregister(fd)
				_ = unix.Close(fd)
				state = tcpDone
				self.Ok = buf
				return asyncrt.Completed
			}
			return asyncrt.Pending

		default:
			self.Ok = buf
			return asyncrt.Completed
		}
	})
}
