package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/domino-league/internal/league"
	"github.com/mauv0809/domino-league/internal/pubsub"
	"github.com/mauv0809/domino-league/internal/ranking"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// computeRankings runs one ranking computation with the configured request
// timeout and records its metrics.
func (s *Server) computeRankings(ctx context.Context, scope ranking.Scope, compute func(context.Context) (ranking.Rankings, error)) (ranking.Rankings, error) {
	if s.Cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Cfg.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	rankings, err := compute(ctx)
	if err != nil {
		return ranking.Rankings{}, err
	}
	s.Metrics.ObserveRankingDuration(time.Since(start).Seconds())
	s.Metrics.IncRankingsComputed(string(scope.Kind))
	if len(rankings.Warnings) > 0 {
		s.Metrics.AddGamesExcluded(len(rankings.Warnings))
		log.Warn("Games excluded from rankings", "scope", scope, "count", len(rankings.Warnings))
	}
	return rankings, nil
}

// parseLimit reads a positive limit, falling back to the given default.
func parseLimit(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		log.Warn("Invalid limit provided. Using default.", "limit", raw, "default", fallback)
		return fallback
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// LeaderboardHandler serves the global leaderboard truncated to ?limit=N.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r.URL.Query().Get("limit"), s.Cfg.LeaderboardLimit)
		rankings, err := s.computeRankings(r.Context(), ranking.GlobalScope(), s.Rankings.GlobalLeaderboard)
		if err != nil {
			log.Error("Failed to compute global leaderboard", "error", err)
			http.Error(w, "Failed to compute leaderboard", http.StatusInternalServerError)
			return
		}

		rankings.Players = rankings.TopPlayers(limit)
		rankings.Pairs = rankings.TopPairs(limit)
		writeJSON(w, http.StatusOK, rankings)
	}
}

// PostLeaderboardHandler posts the global leaderboard, truncated to
// ?limit=N, to the configured Slack channel.
func (s *Server) PostLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r.URL.Query().Get("limit"), s.Cfg.LeaderboardLimit)
		rankings, err := s.computeRankings(r.Context(), ranking.GlobalScope(), s.Rankings.GlobalLeaderboard)
		if err != nil {
			log.Error("Failed to compute global leaderboard", "error", err)
			http.Error(w, "Failed to compute leaderboard", http.StatusInternalServerError)
			return
		}

		if err := s.Notifier.SendLeaderboard(rankings, limit, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to send leaderboard", "error", err)
			http.Error(w, "Failed to send leaderboard", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) CommunityRankingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		communityID := r.PathValue("id")
		rankings, err := s.computeRankings(r.Context(), ranking.CommunityScope(communityID), func(ctx context.Context) (ranking.Rankings, error) {
			return s.Rankings.CommunityRankings(ctx, communityID)
		})
		if err != nil {
			log.Error("Failed to compute community rankings", "communityID", communityID, "error", err)
			http.Error(w, "Failed to compute community rankings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rankings)
	}
}

func (s *Server) CompetitionResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		competitionID := r.PathValue("id")
		if _, err := s.Store.GetCompetition(r.Context(), competitionID); err != nil {
			if errors.Is(err, league.ErrNotFound) {
				http.Error(w, "Competition not found", http.StatusNotFound)
				return
			}
			log.Error("Failed to get competition", "competitionID", competitionID, "error", err)
			http.Error(w, "Failed to get competition", http.StatusInternalServerError)
			return
		}

		rankings, err := s.competitionResults(r.Context(), competitionID)
		if err != nil {
			log.Error("Failed to compute competition results", "competitionID", competitionID, "error", err)
			http.Error(w, "Failed to compute competition results", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rankings)
	}
}

func (s *Server) competitionResults(ctx context.Context, competitionID string) (ranking.Rankings, error) {
	return s.computeRankings(ctx, ranking.CompetitionScope(competitionID), func(ctx context.Context) (ranking.Rankings, error) {
		return s.Rankings.CompetitionResults(ctx, competitionID)
	})
}

// RecordGameHandler stores a new, not yet finished game.
func (s *Server) RecordGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode game", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.CompetitionID == "" || len(req.Team1Players) == 0 || len(req.Team2Players) == 0 {
			http.Error(w, "competition_id, team1_players and team2_players are required", http.StatusBadRequest)
			return
		}

		game, err := s.Store.RecordGame(r.Context(), ranking.GameRecord{
			CompetitionID: req.CompetitionID,
			Team1Players:  req.Team1Players,
			Team2Players:  req.Team2Players,
		})
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			log.Error("Failed to record game", "error", err)
			http.Error(w, "Failed to record game", http.StatusInternalServerError)
			return
		}
		s.Metrics.IncGamesRecorded()
		log.Info("Recorded game", "gameID", game.ID, "competitionID", game.CompetitionID)
		writeJSON(w, http.StatusCreated, game)
	}
}

// FinishGameHandler stores the final score of a game and announces it on
// the game-finished topic.
func (s *Server) FinishGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.PathValue("id")
		var result league.GameResult
		if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
			log.Error("Failed to decode game result", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if result.Team1Score < 0 || result.Team2Score < 0 {
			http.Error(w, ranking.ErrNegativeScore.Error(), http.StatusBadRequest)
			return
		}
		if result.Team1Score == result.Team2Score {
			http.Error(w, ranking.ErrTiedScore.Error(), http.StatusBadRequest)
			return
		}

		game, err := s.Store.FinishGame(r.Context(), gameID, result)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				http.Error(w, "Game not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, league.ErrGameFinished) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			log.Error("Failed to finish game", "gameID", gameID, "error", err)
			http.Error(w, "Failed to finish game", http.StatusInternalServerError)
			return
		}

		if isDryRunFromContext(r) {
			log.Info("Dry run: not publishing game-finished event", "gameID", gameID)
		} else if err := s.PubSub.SendMessage(pubsub.EventGameFinished, game); err != nil {
			// The game is stored; only the announcement is lost.
			log.Error("Failed to publish game-finished event", "gameID", gameID, "error", err)
		}
		writeJSON(w, http.StatusOK, game)
	}
}

// GameFinishedHandler receives game-finished push deliveries and hands the
// game to the processor, which posts the updated competition results.
func (s *Server) GameFinishedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received game-finished message", "body", string(bodyBytes))

		var msg pushMessage
		if err := json.Unmarshal(bodyBytes, &msg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var game ranking.GameRecord
		if err := s.PubSub.ProcessMessage(rawData, &game); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		if err := s.Processor.ProcessFinishedGame(r.Context(), game, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to process finished game", "gameID", game.ID, "error", err)
			http.Error(w, "Failed to process finished game", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack
// command. The command text may carry a limit, e.g. "/leaderboard 5".
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			log.Error("Failed to parse slash command", "error", err)
			http.Error(w, "Invalid slash command", http.StatusBadRequest)
			return
		}
		limit := parseLimit(cmd.Text, s.Cfg.LeaderboardLimit)

		rankings, err := s.computeRankings(r.Context(), ranking.GlobalScope(), s.Rankings.GlobalLeaderboard)
		if err != nil {
			log.Error("Failed to compute global leaderboard", "error", err)
			http.Error(w, "Failed to compute leaderboard", http.StatusInternalServerError)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(rankings, limit)
		if err != nil {
			log.Error("Failed to format leaderboard", "error", err)
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, msg)
	}
}
