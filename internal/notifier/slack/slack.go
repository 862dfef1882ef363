package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/domino-league/internal/metrics"
	"github.com/mauv0809/domino-league/internal/notifier"
	"github.com/mauv0809/domino-league/internal/ranking"
	"github.com/slack-go/slack"
)

// pairsShown caps the pair section of a message.
const pairsShown = 5

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending rankings to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendCompetitionResults(competitionName string, rankings ranking.Rankings, dryRun bool) error {
	msg := s.formatRankings(fmt.Sprintf("🁫 %s standings 🁫", competitionName), rankings, 0)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(rankings ranking.Rankings, limit int, dryRun bool) error {
	msg := s.formatRankings("🏆 Domino Leaderboard 🏆", rankings, limit)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(rankings ranking.Rankings, limit int) (any, error) {
	return s.formatRankings("🏆 Domino Leaderboard 🏆", rankings, limit), nil
}

// formatRankings renders players (up to limit, all when limit <= 0) and the
// best pairs. Ranks are printed as assigned, so tied players share a number.
func (s *Notifier) formatRankings(title string, rankings ranking.Rankings, limit int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", title, true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	players := rankings.TopPlayers(limit)
	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No games finished yet. Go play some dominoes!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, p := range players {
		playerText := fmt.Sprintf("%d. %s %s\n> Win %%: %.1f%% (%d/%d) | Points: %d-%d | Buchudas: %d given, %d taken",
			p.Rank,
			medal(p.Rank),
			p.DisplayName,
			p.WinRate,
			p.Wins,
			p.TotalGames,
			p.PointsGained,
			p.PointsLost,
			p.BuchudasGiven,
			p.BuchudasTaken,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	pairs := rankings.TopPairs(pairsShown)
	if len(pairs) > 0 {
		blocks = append(blocks, slack.NewDividerBlock())
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Best pairs", true, false), nil, nil))
		for _, p := range pairs {
			pairText := fmt.Sprintf("%d. %s & %s | Win %%: %.1f%% (%d/%d)",
				p.Rank,
				p.DisplayNames[0],
				p.DisplayNames[1],
				p.WinRate,
				p.Wins,
				p.TotalGames,
			)
			blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", pairText, true, false), nil, nil))
		}
	}

	if n := len(rankings.Warnings); n > 0 {
		contextText := fmt.Sprintf("%d finished game(s) were left out because of inconsistent scores.", n)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}
