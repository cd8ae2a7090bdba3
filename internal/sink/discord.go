package sink

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/williampepple1/cricket-scorecard-scraper/pkg/models"
)

const (
	colorLive  = 0x00ff00
	colorOther = 0x0000ff

	// Discord accepts at most ten embeds per message
	maxEmbedsPerMessage = 10
)

// Discord posts a one-embed-per-match summary of each batch to a webhook
type Discord struct {
	session   *discordgo.Session
	webhookID string
	token     string
}

// NewDiscord creates a Discord sink from a webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token}
func NewDiscord(webhookURL string) (*Discord, error) {
	id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	return &Discord{session: session, webhookID: id, token: token}, nil
}

func (d *Discord) Name() string {
	return "discord"
}

func (d *Discord) Submit(ctx context.Context, batch models.Batch) error {
	embeds := MatchEmbeds(batch)
	for start := 0; start < len(embeds); start += maxEmbedsPerMessage {
		end := min(start+maxEmbedsPerMessage, len(embeds))

		_, err := d.session.WebhookExecute(d.webhookID, d.token, false, &discordgo.WebhookParams{
			Username: "Cricket Scores",
			Embeds:   embeds[start:end],
		}, discordgo.WithContext(ctx))
		if err != nil {
			return &SubmitError{Sink: d.Name(), Err: err}
		}
	}
	return nil
}

// MatchEmbeds renders one embed per record
func MatchEmbeds(batch models.Batch) []*discordgo.MessageEmbed {
	embeds := make([]*discordgo.MessageEmbed, 0, len(batch))
	for _, record := range batch {
		w := record.Wire()

		color := colorOther
		if record.Card.Status == models.StatusLive {
			color = colorLive
		}

		embeds = append(embeds, &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("%s vs %s", w.Team1, w.Team2),
			URL:         w.MatchURL,
			Description: w.MatchResult,
			Color:       color,
			Fields: []*discordgo.MessageEmbedField{
				{Name: w.Team1, Value: w.Score1, Inline: true},
				{Name: w.Team2, Value: w.Score2, Inline: true},
				{Name: "Status", Value: w.Status, Inline: true},
				{Name: "Venue", Value: w.Venue, Inline: true},
				{Name: "Date", Value: w.Date, Inline: true},
				{Name: "Run Rate", Value: w.CurrentRunRate, Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: "Toss: " + w.Toss},
		})
	}
	return embeds
}

func parseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse webhook url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("webhook url %q does not contain /webhooks/{id}/{token}", raw)
}
