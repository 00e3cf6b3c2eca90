package leaf

import "github.com/joeycumines/asyncrt"

// Value returns a future that completes immediately with ok on its first
// progress call. It never suspends, never touches the reactor, and is
// mainly useful for composing combinators in tests and demos without
// needing a real I/O source.
func Value(ok any) *asyncrt.Future {
	return asyncrt.New(func(self *asyncrt.Future, _ *asyncrt.Reactor, _ asyncrt.Waker) asyncrt.State {
		self.Ok = ok
		return asyncrt.Completed
	})
}

// Error returns a future that fails immediately with errcode on its first
// progress call.
func Error(errcode asyncrt.Errcode) *asyncrt.Future {
	return asyncrt.New(func(self *asyncrt.Future, _ *asyncrt.Reactor, _ asyncrt.Waker) asyncrt.State {
		self.Errcode = errcode
		return asyncrt.Failure
	})
}
