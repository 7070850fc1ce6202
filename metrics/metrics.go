package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ModuleFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whypy_module_fetches_total",
			Help: "Interpreter module fetches",
		},
		[]string{"source", "status"},
	)

	Provisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whypy_provisions_total",
			Help: "Runtime provisioning attempts",
		},
		[]string{"status"},
	)

	ProvisionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "whypy_provision_duration_seconds",
			Help:    "Runtime provisioning duration",
			Buckets: prometheus.DefBuckets,
		},
	)

	Executions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whypy_executions_total",
			Help: "Snippet executions by classification",
		},
		[]string{"classification"},
	)

	ExecutionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "whypy_execution_duration_seconds",
			Help:    "Snippet execution duration",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	QueuedSubmissions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "whypy_queued_submissions",
			Help: "Submissions waiting for the worker",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ModuleFetches,
		Provisions,
		ProvisionDuration,
		Executions,
		ExecutionDuration,
		QueuedSubmissions,
	)
}
