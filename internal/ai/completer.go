// Package ai wraps the hosted language model used for candidate matching and
// suggestions, and parses its replies into typed results.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"referral-network-api/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrModelUnavailable wraps every failure to obtain a reply from the model.
var ErrModelUnavailable = errors.New("language model call failed")

// CompletionRequest is one system+user exchange with the model.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer returns the raw text of a single model reply.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// LangChainCompleter sends completions through a langchaingo model.
type LangChainCompleter struct {
	model llms.Model
}

// NewLangChainCompleter wraps an already constructed model.
func NewLangChainCompleter(model llms.Model) *LangChainCompleter {
	return &LangChainCompleter{model: model}
}

// NewCompleter builds the provider selected in cfg.
func NewCompleter(ctx context.Context, cfg config.AIConfig) (*LangChainCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai.api_key is not set for provider %q", cfg.Provider)
	}

	var (
		model llms.Model
		err   error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err = openai.New(opts...)
	case "googleai", "gemini":
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	log.Printf("AI: using provider=%s model=%s", cfg.Provider, cfg.Model)
	return &LangChainCompleter{model: model}, nil
}

// Complete sends the system instruction and prompt and returns the first choice.
func (c *LangChainCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.System),
		llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt),
	}
	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithTemperature(req.Temperature),
		llms.WithMaxTokens(req.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrModelUnavailable)
	}
	return resp.Choices[0].Content, nil
}

// Disabled returns a Completer that fails every call. It stands in when no
// provider is configured so the AI routes answer 500 instead of the process
// refusing to start.
func Disabled(reason error) Completer {
	return disabledCompleter{reason: reason}
}

type disabledCompleter struct {
	reason error
}

func (d disabledCompleter) Complete(context.Context, CompletionRequest) (string, error) {
	return "", fmt.Errorf("%w: %v", ErrModelUnavailable, d.reason)
}
