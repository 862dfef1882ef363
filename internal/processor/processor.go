package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/domino-league/internal/metrics"
	"github.com/mauv0809/domino-league/internal/ranking"
)

// New creates a new Processor.
func New(store Store, rankings Rankings, notifier Notifier, metrics metrics.Metrics) *Processor {
	return &Processor{
		store:    store,
		rankings: rankings,
		notifier: notifier,
		metrics:  metrics,
	}
}

// ProcessFinishedGame recomputes the results of the game's competition and
// posts them. Games that are not finished are skipped.
func (p *Processor) ProcessFinishedGame(ctx context.Context, game ranking.GameRecord, dryRun bool) error {
	log.Info("Processing game", "gameID", game.ID, "competitionID", game.CompetitionID, "status", game.Status)
	if game.Status != ranking.StatusFinished {
		log.Debug("Game is not finished. No further processing needed.", "gameID", game.ID, "status", game.Status)
		return nil
	}
	if game.CompetitionID == "" {
		return fmt.Errorf("game %s carries no competition", game.ID)
	}

	competition, err := p.store.GetCompetition(ctx, game.CompetitionID)
	if err != nil {
		return fmt.Errorf("failed to get competition %s: %w", game.CompetitionID, err)
	}

	startTime := time.Now()
	results, err := p.rankings.CompetitionResults(ctx, competition.ID)
	if err != nil {
		return fmt.Errorf("failed to compute results for competition %s: %w", competition.ID, err)
	}
	p.metrics.ObserveRankingDuration(time.Since(startTime).Seconds())
	p.metrics.IncRankingsComputed(string(ranking.ScopeCompetition))
	if len(results.Warnings) > 0 {
		p.metrics.AddGamesExcluded(len(results.Warnings))
	}

	if err := p.notifier.SendCompetitionResults(competition.Name, results, dryRun); err != nil {
		return fmt.Errorf("failed to send results for competition %s: %w", competition.ID, err)
	}
	log.Info("Finished processing game", "gameID", game.ID, "competition", competition.Name)
	return nil
}
