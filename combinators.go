package asyncrt

// Then, Join, and Select are the three future combinators. Each returns a
// Future whose Progress closes over the child futures and never pauses
// them past resolution: a child that has already resolved to Completed or
// Failure is never handed another Progress call afterward, matching the
// run-to-completion contract. The state each combinator needs between
// invocations (which children are already resolved, and how) is carried in
// the closure rather than in Future.Arg, since none of it is meaningful to
// a caller the way a leaf future's Arg is.
//
// Semantics are grounded on future_then/future_join/future_select in
// future_combinators.c: Then chains two futures sequentially and forwards
// fut1's result into fut2's Arg; Join runs both concurrently and completes
// once both resolve; Select completes as soon as either resolves and only
// fails once both have failed.

// Then runs fut1 to completion, feeds its Ok into fut2.Arg, then runs fut2
// to completion. If fut1 fails, Then fails immediately with
// ThenErrFut1Failed without ever progressing fut2. If fut2 fails, Then
// fails with ThenErrFut2Failed. On success, Then's Ok is fut2's Ok.
func Then(fut1, fut2 *Future) *Future {
	done1 := false

	return New(func(self *Future, reactor *Reactor, waker Waker) State {
		if !done1 {
			switch fut1.Progress(fut1, reactor, waker) {
			case Pending:
				return Pending
			case Failure:
				self.Errcode = ThenErrFut1Failed
				return Failure
			case Completed:
				done1 = true
				fut2.Arg = fut1.Ok
				fut2.IsActive = true
			}
		}

		switch fut2.Progress(fut2, reactor, waker) {
		case Pending:
			return Pending
		case Failure:
			self.Errcode = ThenErrFut2Failed
			return Failure
		default:
			self.Ok = fut2.Ok
			return Completed
		}
	})
}

// JoinFuture is the Future returned by [Join], with an additional Results
// accessor for reading both children's Ok values without re-decoding
// self.Ok.
type JoinFuture struct {
	*Future
	fut1, fut2 *Future
}

// Results returns the Ok value of each child future. It is only meaningful
// once the JoinFuture has reached Completed.
func (j *JoinFuture) Results() (fut1Ok, fut2Ok any) {
	return j.fut1.Ok, j.fut2.Ok
}

// Join runs fut1 and fut2 concurrently. Each child is progressed at most
// once per resolution: once a child completes or fails, Join caches that
// outcome and stops calling its Progress. Join itself completes only once
// both children have resolved.
//
// If exactly one child fails, Join fails with JoinErrFut1Failed or
// JoinErrFut2Failed once the other child also resolves. If both fail, Join
// fails with JoinErrBothFailed. On success, Join's Ok holds [2]any{fut1.Ok,
// fut2.Ok}; Results provides the same pair without a type assertion.
func Join(fut1, fut2 *Future) *JoinFuture {
	var done1, done2, failed1, failed2 bool

	jf := &JoinFuture{fut1: fut1, fut2: fut2}
	jf.Future = New(func(self *Future, reactor *Reactor, waker Waker) State {
		if !done1 {
			switch fut1.Progress(fut1, reactor, waker) {
			case Completed:
				done1 = true
			case Failure:
				done1 = true
				failed1 = true
			}
		}
		if !done2 {
			switch fut2.Progress(fut2, reactor, waker) {
			case Completed:
				done2 = true
			case Failure:
				done2 = true
				failed2 = true
			}
		}

		if !done1 || !done2 {
			return Pending
		}

		switch {
		case failed1 && failed2:
			self.Errcode = JoinErrBothFailed
			return Failure
		case failed1:
			self.Errcode = JoinErrFut1Failed
			return Failure
		case failed2:
			self.Errcode = JoinErrFut2Failed
			return Failure
		default:
			self.Ok = [2]any{fut1.Ok, fut2.Ok}
			return Completed
		}
	})
	return jf
}

// Select runs fut1 and fut2 concurrently and completes as soon as either
// one completes, without waiting on the other. A child that fails does not
// fail Select outright: Select keeps progressing whichever child has not
// yet resolved, in case it completes. Select only fails once both children
// have failed, and it reports fut1's Errcode in that case rather than a
// Select-specific code, since by then either child's failure reason is
// equally the reason Select itself failed.
//
// Once Select has reached a terminal state, a further Progress call (the
// losing child's own reactor registration can still fire after Select has
// already completed via the other child) must not touch either child
// again: done mirrors the original C combinator's which_completed tag,
// short-circuiting before either child's Progress is called a second time.
func Select(fut1, fut2 *Future) *Future {
	var done bool
	var fut1Failed, fut2Failed bool

	return New(func(self *Future, reactor *Reactor, waker Waker) State {
		if done {
			if self.Errcode != FutureSuccess {
				return Failure
			}
			return Completed
		}

		if !fut1Failed {
			switch fut1.Progress(fut1, reactor, waker) {
			case Completed:
				self.Ok = fut1.Ok
				done = true
				return Completed
			case Failure:
				fut1Failed = true
			}
		}
		if !fut2Failed {
			switch fut2.Progress(fut2, reactor, waker) {
			case Completed:
				self.Ok = fut2.Ok
				done = true
				return Completed
			case Failure:
				fut2Failed = true
			}
		}

		if fut1Failed && fut2Failed {
			self.Errcode = fut1.Errcode
			done = true
			return Failure
		}
		return Pending
	})
}
