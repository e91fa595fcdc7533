package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeChatCreator struct {
	mu    sync.Mutex
	calls []chatCallRecord
	queue []fakeChatResponse
}

type chatCallRecord struct {
	model  string
	config *genai.GenerateContentConfig
	chat   *fakeChat
}

type fakeChatResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeChat struct {
	mu       sync.Mutex
	response fakeChatResponse
	messages []string
}

func (f *fakeChat) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, part := range parts {
		f.messages = append(f.messages, part.Text)
	}
	return f.response.resp, f.response.err
}

func (f *fakeChatCreator) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeChatResponse{resp: resp, err: err})
}

func (f *fakeChatCreator) Create(_ context.Context, model string, config *genai.GenerateContentConfig, _ []*genai.Content) (chatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	chat := &fakeChat{response: res}
	f.calls = append(f.calls, chatCallRecord{model: model, config: config, chat: chat})
	return chat, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	originalSleep := sleep
	sleep = func(time.Duration) {}
	defer func() { sleep = originalSleep }()

	chats := &fakeChatCreator{}
	tempErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	chats.enqueue(nil, tempErr)
	chats.enqueue(textResponse("retry ok"), nil)

	g := &Generator{
		chats:      chats,
		model:      "gemini-2.5-flash",
		maxRetries: 2,
		logger:     zap.NewNop(),
	}

	output, err := g.Generate(context.Background(), "system", "message")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(chats.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(chats.calls))
	}

	for _, call := range chats.calls {
		if call.config == nil || call.config.SystemInstruction == nil {
			t.Fatalf("expected system instruction to be set")
		}
		if got := call.config.SystemInstruction.Parts[0].Text; got != "system" {
			t.Fatalf("unexpected system instruction: %q", got)
		}
		if len(call.chat.messages) != 1 || call.chat.messages[0] != "message" {
			t.Fatalf("unexpected chat message: %+v", call.chat.messages)
		}
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	originalSleep := sleep
	sleep = func(time.Duration) {}
	defer func() { sleep = originalSleep }()

	chats := &fakeChatCreator{}
	tempErr := genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}
	chats.enqueue(nil, tempErr)
	chats.enqueue(nil, tempErr)

	g := &Generator{
		chats:      chats,
		model:      "gemini-2.5-flash",
		maxRetries: 2,
		logger:     zap.NewNop(),
	}

	_, err := g.Generate(context.Background(), "sys", "msg")
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}

	if len(chats.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(chats.calls))
	}
}

func TestGeneratorDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	chats := &fakeChatCreator{}
	quotaErr := genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	}
	chats.enqueue(nil, quotaErr)

	g := &Generator{
		chats:      chats,
		model:      "gemini-2.5-flash",
		maxRetries: 3,
		logger:     zap.NewNop(),
	}

	_, err := g.Generate(context.Background(), "sys", "msg")
	if err == nil {
		t.Fatal("expected error")
	}

	if len(chats.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(chats.calls))
	}
}

func TestGeneratorRetriesOnShortQuotaDelay(t *testing.T) {
	originalSleep := sleep
	sleep = func(time.Duration) {}
	defer func() { sleep = originalSleep }()

	chats := &fakeChatCreator{}
	quotaErr := genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 5 seconds",
	}
	chats.enqueue(nil, quotaErr)
	chats.enqueue(textResponse("recovered"), nil)

	g := &Generator{
		chats:      chats,
		model:      "gemini-2.5-flash",
		maxRetries: 2,
		logger:     zap.NewNop(),
	}

	output, err := g.Generate(context.Background(), "sys", "msg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != "recovered" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	chats := &fakeChatCreator{}
	chats.enqueue(textResponse("   "), nil)

	g := &Generator{
		chats:      chats,
		model:      "gemini-2.5-flash",
		maxRetries: 1,
		logger:     zap.NewNop(),
	}

	if _, err := g.Generate(context.Background(), "sys", "msg"); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestGeneratorEmptyPrompt(t *testing.T) {
	g := &Generator{
		chats:      &fakeChatCreator{},
		model:      "gemini-2.5-flash",
		maxRetries: 1,
		logger:     zap.NewNop(),
	}

	if _, err := g.Generate(context.Background(), "sys", "  "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}
