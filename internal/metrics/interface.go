package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRankingsComputed(scope string)
	AddGamesExcluded(count int)
	ObserveRankingDuration(duration float64)
	IncGamesRecorded()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
