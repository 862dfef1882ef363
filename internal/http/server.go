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

func NewServer(store league.LeagueStore, assembler *ranking.Assembler, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Rankings:       assembler,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		PubSub:         pubsub,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("POST /leaderboard/post", Chain(s.PostLeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /communities/{id}/rankings", Chain(s.CommunityRankingsHandler(), paramsMiddleware))
	s.Router.Handle("GET /competitions/{id}/results", Chain(s.CompetitionResultsHandler(), paramsMiddleware))
	s.Router.Handle("POST /games", Chain(s.RecordGameHandler(), paramsMiddleware))
	s.Router.Handle("POST /games/{id}/finish", Chain(s.FinishGameHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/game-finished", Chain(s.GameFinishedHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, s.slackVerificationMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
