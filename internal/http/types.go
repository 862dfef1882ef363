package http

import (
	"net/http"

	"github.com/mauv0809/domino-league/internal/config"
	"github.com/mauv0809/domino-league/internal/league"
	"github.com/mauv0809/domino-league/internal/metrics"
	"github.com/mauv0809/domino-league/internal/notifier"
	"github.com/mauv0809/domino-league/internal/processor"
	"github.com/mauv0809/domino-league/internal/pubsub"
	"github.com/mauv0809/domino-league/internal/ranking"
)

type Server struct {
	Store          league.LeagueStore
	Rankings       *ranking.Assembler
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	PubSub         pubsub.PubSubClient
	Router         *http.ServeMux
}

type recordGameRequest struct {
	CompetitionID string   `json:"competition_id"`
	Team1Players  []string `json:"team1_players"`
	Team2Players  []string `json:"team2_players"`
}

// pushMessage is the envelope of a Pub/Sub push delivery.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}
