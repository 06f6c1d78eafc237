// Package openai adapts the OpenAI chat completions API to the pipeline's
// Generator port. It is the only component aware of the generative
// service's transport, credentials and model; everything it returns is raw
// JSON for the schema validator to interpret.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/voxline-studio/backend/internal/core/domain"
)

const systemPrompt = `You are a senior YouTube production strategist. You design complete, executable video production plans for faceless and creator-led channels.

You MUST respond with ONLY a valid JSON object — no preamble, no markdown, no explanation. Use exactly the keys the instruction asks for. Every list must contain concrete, specific entries, never placeholders.`

const (
	defaultModel      = "gpt-4o-mini"
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 2
	defaultBackoff    = 500 * time.Millisecond
)

// Config tunes the adapter. Zero values fall back to defaults; retry count,
// backoff and timeout are deliberately configuration rather than constants.
type Config struct {
	APIKey     string
	BaseURL    string // override for tests and proxies
	Model      string
	Timeout    time.Duration // per attempt
	MaxRetries int           // retries after the first attempt
	Backoff    time.Duration // initial backoff, doubled per retry
}

// Client implements ports.Generator over the OpenAI API. Safe for
// concurrent use by independent requests.
type Client struct {
	api         oai.Client
	model       string
	timeout     time.Duration
	maxRetries  int
	baseBackoff time.Duration
	log         *zap.Logger
}

// New constructs the adapter. The SDK's internal retries are disabled so
// this client owns the whole retry budget.
func New(cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai: API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	c := &Client{
		api:         oai.NewClient(opts...),
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: cfg.Backoff,
		log:         log,
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxRetries < 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.baseBackoff <= 0 {
		c.baseBackoff = defaultBackoff
	}
	return c, nil
}

// Generate produces raw JSON for one section. Transient failures (network
// errors, 429, 5xx, attempt timeouts) are retried with exponential backoff
// up to the configured bound; anything terminal becomes a GenerationError
// naming the section.
func (c *Client) Generate(ctx context.Context, kind domain.SectionKind, instruction string) (json.RawMessage, error) {
	var lastErr error
	backoff := c.baseBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, &domain.GenerationError{Kind: kind, Err: err}
		}

		raw, err := c.generateOnce(ctx, instruction)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == c.maxRetries {
			break
		}

		c.log.Warn("generation attempt failed, retrying",
			zap.String("section", string(kind)),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", c.maxRetries),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		if err := sleepWithContext(ctx, backoff); err != nil {
			return nil, &domain.GenerationError{Kind: kind, Err: err}
		}
		backoff *= 2
	}

	return nil, &domain.GenerationError{Kind: kind, Err: lastErr}
}

func (c *Client) generateOnce(ctx context.Context, instruction string) (json.RawMessage, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	completion, err := c.api.Chat.Completions.New(attemptCtx, oai.ChatCompletionNewParams{
		Model: oai.ChatModel(c.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(systemPrompt),
			oai.UserMessage(instruction),
		},
		ResponseFormat: oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &oai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("openai: no choices returned")
	}

	content := stripFences(completion.Choices[0].Message.Content)
	if content == "" {
		return nil, errors.New("openai: empty completion")
	}
	return json.RawMessage(content), nil
}

// isRetryable classifies transport-level failures. Content problems are not
// the adapter's concern; the validator handles those downstream.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var apierr *oai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == 429 || apierr.StatusCode >= 500
	}
	// Attempt timeouts and transport errors.
	return true
}

// stripFences removes a markdown code fence the model may wrap around its
// JSON despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
