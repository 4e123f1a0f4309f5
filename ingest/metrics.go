package ingest

import "github.com/prometheus/client_golang/prometheus"

var (
	recordsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duos_records_processed_total",
			Help: "Total number of input records attempted, per variant.",
		},
		[]string{"variant"},
	)
	recordFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duos_record_failures_total",
			Help: "Total number of input records that failed, per variant.",
		},
		[]string{"variant"},
	)
)

func init() {
	prometheus.MustRegister(recordsProcessed, recordFailures)
}
