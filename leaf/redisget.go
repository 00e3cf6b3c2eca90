package leaf

import (
	"context"

	"github.com/joeycumines/asyncrt"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sys/unix"
)

const (
	redisStart = iota
	redisWaiting
	redisDone
)

type redisOutcome struct {
	value string
	err   error
}

// RedisGet returns a future that performs a single Redis GET against
// client. go-redis has no poll-based API to drive directly from the
// reactor, so the command runs on a background goroutine; a self-pipe
// wakes the reactor once the goroutine finishes, and a buffered channel
// (not the pipe's byte payload) carries the actual result across, so the
// handoff is a proper Go channel send/receive rather than relying on
// syscall ordering for visibility.
func RedisGet(ctx context.Context, client *redis.Client, key string) *asyncrt.Future {
	state := redisStart
	var rfd, wfd int
	result := make(chan redisOutcome, 1)
	var outcome redisOutcome

	return asyncrt.New(func(self *asyncrt.Future, reactor *asyncrt.Reactor, waker asyncrt.Waker) asyncrt.State {
		switch state {
		case redisStart:
			fds, err := unix.Pipe2(unix.O_NONBLOCK | unix.O_CLOEXEC)
			if err != nil {
				self.Errcode = ErrRedisCommand
				return asyncrt.Failure
			}
			rfd, wfd = fds[0], fds[1]
			if err := reactor.Register(rfd, asyncrt.Readable, waker); err != nil {
				_ = unix.Close(rfd)
				_ = unix.Close(wfd)
				self.Errcode = ErrRedisCommand
				return asyncrt.Failure
			}

			go func() {
				value, err := client.Get(ctx, key).Result()
				result <- redisOutcome{value: value, err: err}
				_, _ = unix.Write(wfd, []byte{1})
			}()

			state = redisWaiting
			return asyncrt.Pending

		case redisWaiting:
			var drain [1]byte
			n, err := unix.Read(rfd, drain[:])
			if err == unix.EAGAIN || (n == 0 && err == nil) {
				return asyncrt.Pending
			}

			_ = reactor.Unregister(rfd)
			_ = unix.Close(rfd)
			_ = unix.Close(wfd)

			outcome = <-result
			state = redisDone
			if outcome.err != nil {
				self.Errcode = ErrRedisCommand
				return asyncrt.Failure
			}
			self.Ok = outcome.value
			return asyncrt.Completed

		default:
			self.Ok = outcome.value
			return asyncrt.Completed
		}
	})
}
