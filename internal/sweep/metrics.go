package sweep

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	Evaluations *prometheus.CounterVec
	Margin      prometheus.Histogram
}

// NewMetrics registers sweep collectors on reg, or on a fresh registry when
// reg is nil. reg must also be a prometheus.Gatherer so WriteTextfile dumps
// the same registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	gatherer, ok := reg.(prometheus.Gatherer)
	if !ok {
		return nil, fmt.Errorf("registerer %T is not a gatherer", reg)
	}

	evals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "airframe_sweep_evaluations_total",
		Help: "Design points evaluated, labeled by outcome (feasible, infeasible, error).",
	}, []string{"outcome"})
	if err := reg.Register(evals); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("collector airframe_sweep_evaluations_total already registered with incompatible type")
		}
		evals = existing
	}

	margin := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "airframe_sweep_static_margin_calibers",
		Help:    "Dry static margin of successfully synthesized design points.",
		Buckets: []float64{-1, 0, 0.5, 1, 1.5, 2, 2.5, 3, 4, 6},
	})
	if err := reg.Register(margin); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(prometheus.Histogram)
		if !ok {
			return nil, fmt.Errorf("collector airframe_sweep_static_margin_calibers already registered with incompatible type")
		}
		margin = existing
	}

	return &Metrics{gatherer: gatherer, Evaluations: evals, Margin: margin}, nil
}

func (m *Metrics) observe(e Evaluation) {
	switch {
	case e.Err != nil:
		m.Evaluations.WithLabelValues("error").Inc()
		return
	case e.Feasible:
		m.Evaluations.WithLabelValues("feasible").Inc()
	default:
		m.Evaluations.WithLabelValues("infeasible").Inc()
	}
	m.Margin.Observe(e.Result.StaticMargin)
}

// WriteTextfile dumps the gathered metrics in the node_exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.gatherer)
}
