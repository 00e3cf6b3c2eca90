package asyncrt

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := newMetrics(reg, "test")
	require.NoError(t, err)

	// A CounterVec with no label values yet gathers no family, so record
	// one outcome first for all four collectors to show up.
	m.recordOutcome(Completed)

	gathered, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, gathered, 4)

	m.QueueDrops.Inc()
	m.QueueDepth.Set(3)
}

func TestNewMetrics_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := newMetrics(reg, "dup")
	require.NoError(t, err)

	_, err = newMetrics(reg, "dup")
	require.Error(t, err)
}

func TestMetrics_RecordOutcomeNilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() { m.recordOutcome(Pending) })
}
