package asyncrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyQueue_FIFO(t *testing.T) {
	q := newReadyQueue(4)
	a, b, c := &Future{}, &Future{}, &Future{}

	require.True(t, q.push(a))
	require.True(t, q.push(b))
	require.True(t, q.push(c))
	assert.Equal(t, 3, q.len())

	got, ok := q.pop()
	require.True(t, ok)
	assert.Same(t, a, got)

	got, ok = q.pop()
	require.True(t, ok)
	assert.Same(t, b, got)

	got, ok = q.pop()
	require.True(t, ok)
	assert.Same(t, c, got)

	assert.True(t, q.empty())
}

func TestReadyQueue_FullDropsSilently(t *testing.T) {
	q := newReadyQueue(2)
	require.True(t, q.push(&Future{}))
	require.True(t, q.push(&Future{}))
	assert.True(t, q.full())

	ok := q.push(&Future{})
	assert.False(t, ok, "push on a full queue must report failure rather than growing")
	assert.Equal(t, 2, q.len())
}

func TestReadyQueue_WrapsAroundBackingArray(t *testing.T) {
	q := newReadyQueue(3)
	f1, f2, f3, f4 := &Future{}, &Future{}, &Future{}, &Future{}

	require.True(t, q.push(f1))
	require.True(t, q.push(f2))
	_, _ = q.pop()
	require.True(t, q.push(f3))
	require.True(t, q.push(f4))

	got, _ := q.pop()
	assert.Same(t, f2, got)
	got, _ = q.pop()
	assert.Same(t, f3, got)
	got, _ = q.pop()
	assert.Same(t, f4, got)
	assert.True(t, q.empty())
}

func TestReadyQueue_PopEmpty(t *testing.T) {
	q := newReadyQueue(1)
	_, ok := q.pop()
	assert.False(t, ok)
}
