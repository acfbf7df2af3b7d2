package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics provides observability for the custody module.
// Tracks mutation counts, cascade sizes and tree read durations.
type Metrics struct {
	Mutations        *prometheus.CounterVec
	CascadeRows      *prometheus.CounterVec
	DroppedOrphans   *prometheus.CounterVec
	OrphansRepaired  *prometheus.CounterVec
	TreeReadDuration prometheus.Histogram
	DeleteDuration   prometheus.Histogram
}

// New creates a Metrics instance registered on reg (the default registerer
// when nil).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "custody_mutations_total",
			Help: "Successful custody mutations by entity and operation",
		}, []string{"entity", "op"}),
		CascadeRows: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "custody_cascade_rows_deleted_total",
			Help: "Dependent rows removed while deleting a movement, by table",
		}, []string{"table"}),
		DroppedOrphans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "custody_tree_dropped_rows_total",
			Help: "Rows left out of an assembled tree because their parent was missing",
		}, []string{"kind"}),
		OrphansRepaired: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "custody_orphans_repaired_total",
			Help: "Orphaned legal documents removed by the repair command",
		}, []string{"parent_kind"}),
		TreeReadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "custody_tree_read_duration_seconds",
			Help:    "Duration of fetching and assembling a subject's custody tree",
			Buckets: durationBuckets,
		}),
		DeleteDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "custody_movement_delete_duration_seconds",
			Help:    "Duration of the transactional movement delete",
			Buckets: durationBuckets,
		}),
	}
}

// IncMutation records a successful create, update or delete.
func (m *Metrics) IncMutation(entity, op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(entity, op).Inc()
}

// AddCascade records rows removed from table during a movement delete.
func (m *Metrics) AddCascade(table string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.CascadeRows.WithLabelValues(table).Add(float64(n))
}

// AddDropped records rows left out of an assembled tree.
func (m *Metrics) AddDropped(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.DroppedOrphans.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) AddRepaired(parentKind string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.OrphansRepaired.WithLabelValues(parentKind).Add(float64(n))
}

// ObserveTreeRead records a tree read. Call with time.Now() at the start.
func (m *Metrics) ObserveTreeRead(start time.Time) {
	if m == nil {
		return
	}
	m.TreeReadDuration.Observe(time.Since(start).Seconds())
}

// ObserveDelete records a movement delete. Call with time.Now() at the start.
func (m *Metrics) ObserveDelete(start time.Time) {
	if m == nil {
		return
	}
	m.DeleteDuration.Observe(time.Since(start).Seconds())
}
