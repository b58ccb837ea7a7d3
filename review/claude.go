package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// maxResponseTokens bounds each reply; suggestion lists are short.
	maxResponseTokens = 700
	// samplingTemperature keeps review output near-deterministic.
	samplingTemperature = 0.2
)

const systemPrompt = `You are an expert code reviewer. Reply only with the JSON the task asks for.`

// ClaudeClient reviews diff chunks through the Anthropic Messages API.
type ClaudeClient struct {
	client *anthropic.Client
	model  string
	logger *slog.Logger
}

// NewClaudeClient creates a model client for the given API key and
// model. Extra request options are appended after the key, which lets
// tests point the client at a local server.
func NewClaudeClient(apiKey, model string, logger *slog.Logger, opts ...option.RequestOption) *ClaudeClient {
	// The SDK retries 429s and 5xxs on its own; this pipeline treats
	// every transport failure as final, so retries are turned off.
	options := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	logger.Debug("model client ready", "model", model, "key_hint", keyHint(apiKey))
	return &ClaudeClient{
		client: anthropic.NewClient(options...),
		model:  model,
		logger: logger,
	}
}

// Analyze sends one prompt to the model and parses its reply into
// suggestions. A transport or API failure is returned as an error; a
// reply that does not parse as a suggestion array yields zero
// suggestions and no error.
func (c *ClaudeClient) Analyze(ctx context.Context, prompt string) ([]Suggestion, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.F(anthropic.Model(c.model)),
		MaxTokens:   anthropic.F(int64(maxResponseTokens)),
		Temperature: anthropic.F(samplingTemperature),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(systemPrompt),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("Claude API error: %w", err)
	}

	c.logger.Debug("Claude API usage",
		"input_tokens", message.Usage.InputTokens,
		"output_tokens", message.Usage.OutputTokens,
	)

	for _, block := range message.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			return ParseSuggestions(block.Text), nil
		}
	}
	return nil, nil
}

// keyHint returns the last 4 characters of an API key for log output.
func keyHint(apiKey string) string {
	if len(apiKey) < 4 {
		return "****"
	}
	return apiKey[len(apiKey)-4:]
}
