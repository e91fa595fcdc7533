package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultModel      = "gpt-4o-mini"
	defaultMaxRetries = 2
	retryDelay        = 2 * time.Second
)

// Swappable in tests.
var sleep = time.Sleep

type completionCreator interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Generator wraps the OpenAI chat-completion API behind the same surface as
// the Gemini provider.
type Generator struct {
	client     completionCreator
	model      string
	maxRetries int
	logger     *zap.Logger
}

// NewGenerator creates a Generator for the OpenAI API.
func NewGenerator(apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client:     goopenai.NewClient(apiKey),
		model:      model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// Generate sends the prompt as a chat completion and returns the first
// choice. Rate-limit and server errors are retried with a fixed delay.
func (g *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("openai generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	messages := make([]goopenai.ChatCompletionMessage, 0, 2)
	if system = strings.TrimSpace(system); system != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := goopenai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", errors.New("openai api returned no choices")
			}
			output := strings.TrimSpace(resp.Choices[0].Message.Content)
			if output == "" {
				return "", errors.New("openai api returned empty response")
			}
			return output, nil
		}

		lastErr = err
		if !isRetryable(err) || attempt == g.maxRetries {
			break
		}

		g.logger.Warn("temporary openai error, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", g.maxRetries),
			zap.Error(err),
		)
		sleep(retryDelay)
	}

	return "", fmt.Errorf("create chat completion: %w", lastErr)
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func isRetryable(err error) bool {
	var apiErr *goopenai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.HTTPStatusCode >= http.StatusInternalServerError ||
		apiErr.HTTPStatusCode == http.StatusTooManyRequests
}
