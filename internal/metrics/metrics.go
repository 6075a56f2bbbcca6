// Package metrics exposes Prometheus instruments for the scan pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScanDecisions counts finished scan attempts by decision and reason.
// ALLOW carries an empty reason; internal failures are recorded under
// decision="ERROR".
var ScanDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gate_scan_decisions_total",
		Help: "Scan attempts by decision and deny reason.",
	},
	[]string{"decision", "reason"},
)

// ScanDuration observes end-to-end scan handling latency in seconds.
var ScanDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "gate_scan_duration_seconds",
		Help:    "End-to-end latency of scan validation.",
		Buckets: prometheus.DefBuckets,
	},
)
