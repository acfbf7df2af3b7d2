package access

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Denied *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Metrics{
		Denied: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "custody_access_denied_total",
			Help: "Permission checks that denied access, by module and required level",
		}, []string{"module", "required"}),
	}
}

func (m *Metrics) IncDenied(module Module, required Level) {
	m.Denied.WithLabelValues(string(module), required.String()).Inc()
}
