package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

// ErrEmptyOutline is returned when the model answers with no text.
var ErrEmptyOutline = errors.New("model returned an empty outline")

// OutlineClient asks Claude to turn a product vision into a plain-text outline.
type OutlineClient struct {
	client      *Client
	maxTokens   int64
	temperature float64
	timeout     time.Duration
}

// OutlineOption configures an OutlineClient.
type OutlineOption func(*OutlineClient)

// WithMaxTokens caps the length of the generated outline.
func WithMaxTokens(n int) OutlineOption {
	return func(o *OutlineClient) {
		if n > 0 {
			o.maxTokens = int64(n)
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) OutlineOption {
	return func(o *OutlineClient) { o.temperature = t }
}

// WithTimeout bounds each Outline call. Zero disables the bound.
func WithTimeout(d time.Duration) OutlineOption {
	return func(o *OutlineClient) { o.timeout = d }
}

// NewOutlineClient creates an OutlineClient on top of client.
func NewOutlineClient(client *Client, opts ...OutlineOption) *OutlineClient {
	o := &OutlineClient{
		client:      client,
		maxTokens:   4096,
		temperature: 0.4,
		timeout:     2 * time.Minute,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Tracker returns the token tracker of the underlying client.
func (o *OutlineClient) Tracker() *TokenTracker {
	return o.client.Tracker()
}

// Outline requests an outline for vision and returns its text with any
// surrounding markdown fence removed.
func (o *OutlineClient) Outline(ctx context.Context, vision string) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.client.messages().New(ctx, anthropic.MessageNewParams{
		Model:       o.client.Model(),
		MaxTokens:   o.maxTokens,
		Temperature: anthropic.Float(o.temperature),
		System: []anthropic.TextBlockParam{
			{Text: OutlineSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildOutlinePrompt(vision))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("outline request failed: %w", err)
	}

	o.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}

	outline := stripCodeFence(result.String())
	if outline == "" {
		return "", ErrEmptyOutline
	}
	return outline, nil
}

// stripCodeFence removes a markdown code block wrapped around the response,
// including an optional language tag on the opening fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
