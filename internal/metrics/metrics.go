package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Ledger
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_operations_total",
			Help: "Committed point operations",
		},
		[]string{"type"}, // charge|use
	)
	OperationsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_operations_rejected_total",
			Help: "Point operations rejected by balance rules",
		},
		[]string{"type", "reason"},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// Handler serves the default registry on /metrics.
var Handler = promhttp.Handler

// Init registers the collectors with the default registry. Safe to call more
// than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(OperationsTotal)
		prometheus.MustRegister(OperationsRejected)
		prometheus.MustRegister(WorkerQueueDepth)
	})
}
