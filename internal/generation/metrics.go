package generation

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts generation calls by operation and outcome
type Metrics struct {
	calls *prometheus.CounterVec
}

// NewMetrics registers the generation counters on reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generation_calls_total",
				Help: "Remote generation calls by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
	if err := reg.Register(m.calls); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.calls.WithLabelValues(op, outcome).Inc()
}
