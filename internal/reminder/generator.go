// Package reminder produces short natural-language nudges for unsettled
// debts. Generation is best-effort: when the external model is unavailable
// or errors, a deterministic templated message is returned instead, and the
// failure never reaches the caller.
package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmynk/tabby/internal/money"
)

const (
	defaultEndpoint = "https://api.anthropic.com/v1/messages"
	defaultModel    = "claude-3-haiku-20240307"
)

// Generator produces a reminder message for a debt edge.
type Generator interface {
	// Reminder returns a one-line message telling from to settle up with
	// to. Always returns usable text.
	Reminder(ctx context.Context, fromName, toName string, amount money.Amount, currency string) string
}

// Fallback is the deterministic template used whenever generation cannot
// happen.
func Fallback(fromName, toName string, amount money.Amount, currency string) string {
	return fmt.Sprintf("Hey %s, %s says you owe %s%s — time to settle up!", fromName, toName, currency, amount)
}

// TemplateGenerator always answers with the fallback template.
type TemplateGenerator struct{}

// Reminder implements Generator.
func (TemplateGenerator) Reminder(_ context.Context, fromName, toName string, amount money.Amount, currency string) string {
	return Fallback(fromName, toName, amount, currency)
}

// ClaudeGenerator asks the Anthropic messages API for a playful one-liner,
// falling back to the template on any failure.
type ClaudeGenerator struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

// New returns a ClaudeGenerator when apiKey is set and a TemplateGenerator
// otherwise.
func New(apiKey string) Generator {
	if apiKey == "" {
		return TemplateGenerator{}
	}
	return &ClaudeGenerator{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		model:    defaultModel,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Reminder implements Generator.
func (g *ClaudeGenerator) Reminder(ctx context.Context, fromName, toName string, amount money.Amount, currency string) string {
	prompt := fmt.Sprintf(`Write a short, playful reminder message for a friend to settle a small IOU. Keep it kind, witty, and shareable in chat. Avoid shaming, politics, sensitive topics. Use one line + one emoji. Details:
- From: %s
- To: %s
- Amount: %s %s
Tone: breezy, 12-18 words.

Respond with ONLY the message text, nothing else.`, toName, fromName, amount, currency)

	body, err := json.Marshal(messageRequest{
		Model:     g.model,
		MaxTokens: 100,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return Fallback(fromName, toName, amount, currency)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return Fallback(fromName, toName, amount, currency)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Warn("Reminder generation failed, using fallback", "error", err)
		return Fallback(fromName, toName, amount, currency)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Reminder generation failed, using fallback", "status", resp.StatusCode)
		return Fallback(fromName, toName, amount, currency)
	}

	var parsed messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil || len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		slog.Warn("Reminder generation returned no text, using fallback", "error", err)
		return Fallback(fromName, toName, amount, currency)
	}

	return parsed.Content[0].Text
}
