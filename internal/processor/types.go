package processor

import (
	"github.com/mauv0809/domino-league/internal/metrics"
)

// Processor handles the business logic of processing finished games.
type Processor struct {
	store    Store
	rankings Rankings
	notifier Notifier
	metrics  metrics.Metrics
}
