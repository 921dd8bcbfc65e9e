// Package ai is the boundary between the application and the generative
// provider: it builds natural-language prompts, sends them to the provider,
// and parses the returned text back into typed data. Every operation is a
// stateless single-shot transformation; the only state the package holds is
// the provider client itself.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sethvargo/go-retry"
)

// Completer abstracts the single call the gateway makes against the
// generative provider. Defined here so tests and the gateway can share it;
// production wiring passes the OpenAI-backed implementation below.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// openAICompleter calls the OpenAI chat-completions endpoint with bounded
// retry on transient failures (rate limits, 5xx, network errors).
type openAICompleter struct {
	client openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAICompleter builds a Completer over the OpenAI API. baseURL is
// optional and overrides the provider endpoint. An empty apiKey is accepted:
// startup must not fail without a key, the calls themselves will.
func NewOpenAICompleter(apiKey, model, baseURL string, log *slog.Logger) Completer {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAICompleter{
		client: openai.NewClient(opts...),
		model:  model,
		log:    log,
	}
}

// Complete sends one system+user prompt pair and returns the raw model text.
// Transient upstream failures are retried with exponential backoff before
// the error is handed to the caller's failure policy.
func (c *openAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	var content string

	backoff := retry.WithMaxRetries(2, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
		})
		if err != nil {
			if isTransient(err) {
				c.log.Warn("provider call failed, retrying", "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("provider returned no choices")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ai.Complete: %w", err)
	}

	return content, nil
}

// isTransient reports whether an upstream error is worth retrying:
// rate limiting and server-side failures are, auth and bad requests are not.
func isTransient(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	// Network-level errors carry no status; treat them as transient.
	return true
}
