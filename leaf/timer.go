package leaf

import (
	"time"

	"github.com/joeycumines/asyncrt"
)

const (
	timerStart = iota
	timerArmed
	timerDone
)

// Sleep returns a future that completes with no value once d elapses. It
// registers a kernel timer with the reactor rather than blocking, so the
// executor's other futures keep making progress while it waits.
func Sleep(d time.Duration) *asyncrt.Future {
	state := timerStart
	var id int

	return asyncrt.New(func(self *asyncrt.Future, reactor *asyncrt.Reactor, waker asyncrt.Waker) asyncrt.State {
		switch state {
		case timerStart:
			armedID, err := reactor.RegisterTimer(d, waker)
			if err != nil {
				self.Errcode = ErrTimerRegister
				return asyncrt.Failure
			}
			id = armedID
			state = timerArmed
			return asyncrt.Pending
		case timerArmed:
			_ = reactor.UnregisterTimer(id)
			state = timerDone
			self.Ok = struct{}{}
			return asyncrt.Completed
		default:
			self.Ok = struct{}{}
			return asyncrt.Completed
		}
	})
}
