package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultMaxRetries = 2
	retryDelay        = 2 * time.Second
	// Suggested quota delays beyond this are not worth waiting out in an
	// interactive run.
	maxQuotaDelay = 30 * time.Second
)

// Swappable in tests.
var sleep = time.Sleep

var retryAfterPattern = regexp.MustCompile(`retry after (\d+(?:\.\d+)?) seconds`)

type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	client *genai.Client
}

func (g *genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	return g.client.Chats.Create(ctx, model, config, history)
}

// Generator wraps the Google GenAI client to provide simple prompt-based
// interactions against the Gemini API backend.
type Generator struct {
	chats      chatCreator
	model      string
	maxRetries int
	logger     *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
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
		chats:      &genaiChats{client: client},
		model:      model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// Generate sends the prompt to Gemini and returns the combined textual
// response. Temporary API errors are retried up to the configured limit with
// a fixed delay between attempts.
func (g *Generator) Generate(ctx context.Context, system, prompt string) (string, error) {
	if g == nil || g.chats == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	config := &genai.GenerateContentConfig{}
	if system = strings.TrimSpace(system); system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		chat, err := g.chats.Create(ctx, g.model, config, nil)
		if err != nil {
			return "", fmt.Errorf("create chat session: %w", err)
		}

		resp, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
		if err == nil {
			output := collectText(resp)
			if output == "" {
				return "", errors.New("gemini api returned empty response")
			}
			return output, nil
		}

		lastErr = err
		if !isRetryable(err) || attempt == g.maxRetries {
			break
		}

		g.logger.Warn("temporary gemini error, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", g.maxRetries),
			zap.Error(err),
		)
		sleep(retryDelay)
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

func isRetryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.Code >= http.StatusInternalServerError {
		return true
	}

	if apiErr.Code == http.StatusTooManyRequests {
		if delay, ok := suggestedDelay(apiErr.Message); ok && delay > maxQuotaDelay {
			return false
		}
		return true
	}

	return false
}

// suggestedDelay parses the "retry after N seconds" hint from quota error
// messages.
func suggestedDelay(message string) (time.Duration, bool) {
	matches := retryAfterPattern.FindStringSubmatch(strings.ToLower(message))
	if matches == nil {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}
