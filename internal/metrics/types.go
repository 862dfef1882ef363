package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus implementation of Metrics.
type Service struct {
	RankingsComputed   *prometheus.CounterVec
	GamesExcluded      prometheus.Counter
	RankingDuration    prometheus.Histogram
	GamesRecorded      prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
