package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-brackets/internal/metrics"
	"github.com/mauv0809/padel-brackets/internal/notifier"
	"github.com/mauv0809/padel-brackets/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts bracket events to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
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

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message) (string, string, error) {
	if notifier.IsDryRun(ctx) {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// NotifyMatchSynced announces a stored score. Matches that are not completed
// yet are not announced.
func (s *Notifier) NotifyMatchSynced(ctx context.Context, update notifier.MatchUpdate) error {
	if update.Status != tournament.StatusCompleted {
		log.Debug("Skipping Slack result for unfinished match", "gameID", update.GameID, "status", update.Status)
		return nil
	}
	_, _, err := s.sendMessage(ctx, formatMatchResult(update))
	return err
}

// NotifyResyncFailed tells the channel that a score could not be stored.
func (s *Notifier) NotifyResyncFailed(ctx context.Context, failure notifier.ResyncFailure) error {
	_, _, err := s.sendMessage(ctx, formatResyncFailure(failure))
	return err
}

// formatMatchResult creates the Slack message for a finished match using Block Kit.
func formatMatchResult(u notifier.MatchUpdate) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Match finished! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	round := u.Phase
	if u.Label != "" {
		round = fmt.Sprintf("%s (%s)", u.Phase, u.Label)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Round:* %s", round), false, false), nil, nil))

	team1, team2 := u.Team1, u.Team2
	switch u.WinnerTeam {
	case 1:
		team1 = "🏆 *" + team1 + "*"
	case 2:
		team2 = "🏆 *" + team2 + "*"
	}
	teamsText := fmt.Sprintf("%s\nvs\n%s", team1, team2)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", teamsText, false, false), nil, nil))

	if len(u.Sets) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("mrkdwn", "Sets: "+formatSets(u.Sets), false, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

func formatResyncFailure(f notifier.ResyncFailure) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚠️ Score not saved", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	reason := "unknown error"
	if f.Err != nil {
		reason = f.Err.Error()
	}
	detailsText := fmt.Sprintf("*Category:* %s\n*Game:* %d\n*Step:* %s\n*Reason:* %s", f.CategoryID, f.GameID, f.Step, reason)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", detailsText, false, false), nil, nil))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "The bracket was left unchanged. Submit the score again.", true, false)))

	return slack.NewBlockMessage(blocks...)
}

func formatSets(sets []tournament.SetScore) string {
	parts := make([]string, 0, len(sets))
	for _, set := range tournament.SortSets(sets) {
		parts = append(parts, fmt.Sprintf("%d-%d", set.Score1, set.Score2))
	}
	return strings.Join(parts, ", ")
}
