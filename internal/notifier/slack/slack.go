package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/halo-league-export/internal/metrics"
	"github.com/mauv0809/halo-league-export/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack client.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// SendExportSummary posts the outcome of an export to the channel.
func (s *Notifier) SendExportSummary(summary notifier.ExportSummary, dryRun bool) error {
	_, _, err := s.sendMessage(formatExportSummary(summary), dryRun)
	return err
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
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

func formatExportSummary(summary notifier.ExportSummary) slack.Message {
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Match exported", true, false))
	intro := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Match:* `%s`\n*Export:* `%s`", summary.MatchID, summary.ExportID), false, false),
		nil, nil,
	)
	blocks := []slack.Block{header, intro, slack.NewDividerBlock()}

	section := func(title string, lines []notifier.PlayerLine) {
		if len(lines) == 0 {
			return
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "*%s*\n", title)
		for _, l := range lines {
			fmt.Fprintf(&sb, "• %s (draft %s): %d K / %d D, %d goals\n", l.Gamertag, l.DraftPos, l.Kills, l.Deaths, l.Goals)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false), nil, nil))
	}
	section(":trophy: Winners", summary.Winners)
	section("Losers", summary.Losers)
	section("No result", summary.Others)

	if summary.Anomalies > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf(":warning: %d stat anomalies, check the sheet before publishing.", summary.Anomalies), false, false),
		))
	}
	return slack.NewBlockMessage(blocks...)
}
