package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncMutation("movement", "create")
	m.IncMutation("movement", "create")
	m.AddCascade("cell_assignments", 3)
	m.AddCascade("procedure_entries", 0)
	m.AddDropped("document", 2)
	m.AddRepaired("movement", 4)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Mutations.WithLabelValues("movement", "create")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.CascadeRows.WithLabelValues("cell_assignments")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CascadeRows))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.DroppedOrphans.WithLabelValues("document")))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.OrphansRepaired.WithLabelValues("movement")))
}

func TestHistograms(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveTreeRead(time.Now())
	m.ObserveDelete(time.Now())
	assert.Equal(t, 1, testutil.CollectAndCount(m.TreeReadDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.DeleteDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncMutation("movement", "delete")
		m.AddCascade("legal_documents", 1)
		m.AddDropped("cell", 1)
		m.AddRepaired("cell_assignment", 1)
		m.ObserveTreeRead(time.Now())
		m.ObserveDelete(time.Now())
	})
}
