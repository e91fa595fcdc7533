package openai

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type fakeCompleter struct {
	responses []fakeResponse
	requests  []goopenai.ChatCompletionRequest
}

type fakeResponse struct {
	resp goopenai.ChatCompletionResponse
	err  error
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		return goopenai.ChatCompletionResponse{}, errors.New("unexpected call")
	}
	res := f.responses[0]
	f.responses = f.responses[1:]
	return res.resp, res.err
}

func completionResponse(text string) goopenai.ChatCompletionResponse {
	return goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{
			{Message: goopenai.ChatCompletionMessage{Content: text}},
		},
	}
}

func TestGenerateSendsSystemAndUserMessages(t *testing.T) {
	fake := &fakeCompleter{responses: []fakeResponse{{resp: completionResponse("result")}}}
	g := &Generator{client: fake, model: "gpt-4o-mini", maxRetries: 1, logger: zap.NewNop()}

	output, err := g.Generate(context.Background(), "be helpful", "optimize this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != "result" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(fake.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(fake.requests))
	}

	messages := fake.requests[0].Messages
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != goopenai.ChatMessageRoleSystem || messages[0].Content != "be helpful" {
		t.Fatalf("unexpected system message: %+v", messages[0])
	}
	if messages[1].Role != goopenai.ChatMessageRoleUser || messages[1].Content != "optimize this" {
		t.Fatalf("unexpected user message: %+v", messages[1])
	}
}

func TestGenerateRetriesOnServerError(t *testing.T) {
	originalSleep := sleep
	sleep = func(time.Duration) {}
	defer func() { sleep = originalSleep }()

	fake := &fakeCompleter{responses: []fakeResponse{
		{err: &goopenai.APIError{HTTPStatusCode: http.StatusServiceUnavailable}},
		{resp: completionResponse("recovered")},
	}}
	g := &Generator{client: fake, model: "gpt-4o-mini", maxRetries: 2, logger: zap.NewNop()}

	output, err := g.Generate(context.Background(), "", "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != "recovered" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(fake.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(fake.requests))
	}
}

func TestGenerateDoesNotRetryOnAuthError(t *testing.T) {
	fake := &fakeCompleter{responses: []fakeResponse{
		{err: &goopenai.APIError{HTTPStatusCode: http.StatusUnauthorized}},
	}}
	g := &Generator{client: fake, model: "gpt-4o-mini", maxRetries: 3, logger: zap.NewNop()}

	if _, err := g.Generate(context.Background(), "", "prompt"); err == nil {
		t.Fatal("expected error")
	}

	if len(fake.requests) != 1 {
		t.Fatalf("expected single request, got %d", len(fake.requests))
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	fake := &fakeCompleter{responses: []fakeResponse{{resp: goopenai.ChatCompletionResponse{}}}}
	g := &Generator{client: fake, model: "gpt-4o-mini", maxRetries: 1, logger: zap.NewNop()}

	if _, err := g.Generate(context.Background(), "", "prompt"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
