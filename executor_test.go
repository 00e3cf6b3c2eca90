package asyncrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_RunsSpawnedFuturesInFIFOOrder(t *testing.T) {
	ex, err := NewExecutor(DefaultConfig(), NewNoopLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, ex.Destroy()) }()

	var order []int
	newRecorder := func(id int) *Future {
		return New(func(self *Future, _ *Reactor, _ Waker) State {
			order = append(order, id)
			return Completed
		})
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, ex.Spawn(newRecorder(i)))
	}
	ex.Run()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestExecutor_SpawnDropsSilentlyWhenQueueFull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueueCapacity = 1
	ex, err := NewExecutor(cfg, NewNoopLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, ex.Destroy()) }()

	block := New(func(self *Future, _ *Reactor, waker Waker) State {
		// Completes on its first progress call; it only occupies the single
		// queue slot until Run drains it below.
		return Completed
	})
	require.NoError(t, ex.Spawn(block))

	overflow := New(func(self *Future, _ *Reactor, _ Waker) State { return Completed })
	err = ex.Spawn(overflow)
	assert.NoError(t, err, "silent drop is not itself an error without StrictQueue")
	assert.False(t, overflow.IsActive, "a dropped future must not be left marked active")

	ex.Run()
}

func TestExecutor_SpawnReturnsErrQueueFullWhenStrict(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueueCapacity = 1
	cfg.StrictQueue = true
	ex, err := NewExecutor(cfg, NewNoopLogger())
	require.NoError(t, err)

	block := New(func(self *Future, _ *Reactor, _ Waker) State { return Completed })
	require.NoError(t, ex.Spawn(block))

	overflow := New(func(self *Future, _ *Reactor, _ Waker) State { return Completed })
	err = ex.Spawn(overflow)
	assert.ErrorIs(t, err, ErrQueueFull)

	ex.Run()
	require.NoError(t, ex.Destroy())
}

func TestExecutor_DestroyRejectsNonEmptyQueue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueueCapacity = 4
	ex, err := NewExecutor(cfg, NewNoopLogger())
	require.NoError(t, err)

	// A future pushed straight onto the ready queue and never run: the queue
	// is non-empty, so Destroy's precondition should reject the call.
	ex.queue.push(New(func(self *Future, _ *Reactor, _ Waker) State { return Pending }))

	err = ex.Destroy()
	assert.ErrorIs(t, err, ErrExecutorDestroyNotEmpty)

	// Drain it manually; Destroy then succeeds on the empty queue.
	_, _ = ex.queue.pop()
	require.NoError(t, ex.Destroy())
}

func TestExecutor_ClearsIsActiveOnTerminalState(t *testing.T) {
	ex, err := NewExecutor(DefaultConfig(), NewNoopLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, ex.Destroy()) }()

	fut := New(func(self *Future, _ *Reactor, _ Waker) State { return Completed })
	require.NoError(t, ex.Spawn(fut))
	assert.True(t, fut.IsActive)

	ex.Run()
	assert.False(t, fut.IsActive)
}
