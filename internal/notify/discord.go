package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	colorRed    = 0xE74C3C // heavy-duty floor breach
	colorOrange = 0xE67E22 // firewall / thin comps
)

// maxNoteLines keeps the Discord embed description within sane bounds.
const maxNoteLines = 8

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendEscalation sends one escalation as a Discord embed.
func (d *DiscordNotifier) SendEscalation(ctx context.Context, esc *EscalationPayload) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(esc)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(esc *EscalationPayload) discordEmbed {
	color := colorOrange
	if esc.Floor {
		color = colorRed
	}

	notes := esc.Notes
	if len(notes) > maxNoteLines {
		notes = notes[len(notes)-maxNoteLines:]
	}

	embed := discordEmbed{
		Title:       fmt.Sprintf("Pricing escalation: %s", esc.Vehicle),
		Color:       color,
		Description: strings.Join(notes, "\n"),
		Fields: []discordEmbedField{
			{Name: "Reason", Value: esc.Reason},
			{Name: "Usable comps", Value: fmt.Sprintf("%d", esc.NComps), Inline: true},
		},
	}

	if esc.Location != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name: "Location", Value: esc.Location, Inline: true,
		})
	}

	return embed
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
