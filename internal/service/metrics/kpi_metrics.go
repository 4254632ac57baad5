package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	KPILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecom",
			Subsystem: "kpi",
			Name:      "latency_seconds",
			Help:      "Latency of KPI endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	KPIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecom",
			Subsystem: "kpi",
			Name:      "errors_total",
			Help:      "Errors by KPI endpoint",
		},
		[]string{"endpoint"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecom",
			Subsystem: "kpi",
			Name:      "cache_hits_total",
			Help:      "Response cache hits by endpoint",
		},
		[]string{"endpoint"},
	)

	AnomaliesFlagged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecom",
			Subsystem: "anomaly",
			Name:      "flagged_total",
			Help:      "Anomalous days flagged, by method",
		},
		[]string{"method"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(KPILatency, KPIErrors, CacheHits, AnomaliesFlagged)
	})
}
