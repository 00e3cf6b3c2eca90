// Package asyncrt error surfaces, per spec.md §7.
//
// Three surfaces are distinguished: future failure (a non-exceptional
// outcome carried on the Future itself as a numeric Errcode), reactor
// registration failure (a Go error returned from Register/Unregister, left
// to the leaf future to interpret), and fatal system failure (logged and
// terminates the process, since the runtime cannot maintain its contract
// once the reactor's kernel handle is no longer trustworthy).
package asyncrt

import "errors"

// Combinator error discriminants. Numeric and non-overlapping, per
// spec.md §6. A Completed future always carries FutureSuccess; a Failure
// never does.
const (
	// ThenErrFut1Failed is set on a Then future when its first child fails.
	ThenErrFut1Failed Errcode = iota + 1
	// ThenErrFut2Failed is set on a Then future when its second child fails
	// (its first child having already completed).
	ThenErrFut2Failed

	// JoinErrFut1Failed is set on a JoinFuture when only its first child
	// failed.
	JoinErrFut1Failed
	// JoinErrFut2Failed is set on a JoinFuture when only its second child
	// failed.
	JoinErrFut2Failed
	// JoinErrBothFailed is set on a JoinFuture when both children failed.
	JoinErrBothFailed
)

// A Select future carries no combinator-specific error code: per spec.md §4.6
// and §9, it propagates the winning (or, on double failure, the first)
// child's Errcode verbatim.

// Sentinel errors returned from the registration and construction surface.
// These are ordinary Go errors, not Errcode values: they describe failures
// in calling the runtime's API correctly, not future outcomes.
var (
	// ErrQueueFull is returned by Executor.Spawn when the ready queue is at
	// capacity and Config.StrictQueue is enabled. With StrictQueue disabled
	// (the default, matching the reference implementation) a full queue is
	// a silent no-op instead; see queue.go.
	ErrQueueFull = errors.New("asyncrt: ready queue is full")

	// ErrFDAlreadyRegistered is returned by Reactor.Register when fd is
	// already registered in this reactor instance. Re-registration is a
	// caller error (spec.md §4.3); the reactor does not make it idempotent.
	ErrFDAlreadyRegistered = errors.New("asyncrt: fd already registered")

	// ErrFDNotRegistered is returned by Reactor.Unregister when fd has no
	// active registration.
	ErrFDNotRegistered = errors.New("asyncrt: fd not registered")

	// ErrReactorClosed is returned by Reactor.Register and
	// Reactor.RegisterTimer after Destroy has been called.
	ErrReactorClosed = errors.New("asyncrt: reactor is closed")

	// ErrExecutorDestroyNotEmpty is returned by Executor.Destroy when the
	// ready queue is non-empty, per its documented precondition.
	ErrExecutorDestroyNotEmpty = errors.New("asyncrt: cannot destroy executor with a non-empty ready queue")
)
