package adapter

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	apperrors "linkedinsight/backend/pkg/errors"
	"linkedinsight/backend/pkg/logger"
)

const maxRetries = 3

// Observer receives one call per upstream request outcome
type Observer func(kind, status string)

// LLMAdapter handles chat completions and embeddings against an
// OpenAI-compatible API
type LLMAdapter struct {
	client     *openai.Client
	model      string
	embedModel string
	mu         sync.RWMutex // Protects model fields for concurrent access
	backoff    time.Duration
	observe    Observer
	logger     *zap.Logger
}

// NewLLMAdapter creates a new LLM adapter. baseURL must include the API
// version prefix, e.g. https://api.openai.com/v1
func NewLLMAdapter(baseURL, apiKey, chatModel, embedModel string) *LLMAdapter {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/")
	}

	return &LLMAdapter{
		client:     openai.NewClientWithConfig(config),
		model:      chatModel,
		embedModel: embedModel,
		backoff:    time.Second,
		observe:    func(string, string) {},
		logger:     logger.Get(),
	}
}

// SetObserver installs a callback for request outcomes
func (a *LLMAdapter) SetObserver(o Observer) {
	if o != nil {
		a.observe = o
	}
}

// SetModel updates the chat model used by this adapter
func (a *LLMAdapter) SetModel(model string) {
	if model != "" {
		a.mu.Lock()
		a.model = model
		a.mu.Unlock()
		a.logger.Debug("LLM adapter model updated", zap.String("model", model))
	}
}

// GetModel returns the current chat model
func (a *LLMAdapter) GetModel() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.model
}

// EmbedModel returns the embeddings model
func (a *LLMAdapter) EmbedModel() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.embedModel
}

// GenerateOptions tunes a single completion
type GenerateOptions struct {
	MaxTokens int
}

// Response represents the LLM's response
type Response struct {
	Content string
	Model   string
}

// Generate sends a chat completion request and returns the trimmed reply
func (a *LLMAdapter) Generate(ctx context.Context, systemPrompt, userMsg string, opts GenerateOptions) (*Response, error) {
	currentModel := a.GetModel()

	req := openai.ChatCompletionRequest{
		Model: currentModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMsg},
		},
		Temperature: 0.7,
		MaxTokens:   opts.MaxTokens,
	}

	// Retry with linear backoff
	var resp openai.ChatCompletionResponse
	var err error
	attempts := 0
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * a.backoff
			a.logger.Warn("Retrying LLM request",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				a.observe("chat", "error")
				return nil, apperrors.NewContextCancelled("llm generate", ctx.Err())
			case <-time.After(backoff):
			}
		}

		attempts++
		resp, err = a.client.CreateChatCompletion(ctx, req)
		if err == nil {
			break
		}

		a.logger.Error("LLM request failed",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.String("model", currentModel),
		)

		if ctx.Err() != nil {
			break
		}
		if !apperrors.IsRetryable(apperrors.NewAgentLLMFailed(currentModel, attempts, retryable(err), err)) {
			break
		}
	}

	if err != nil {
		a.observe("chat", "error")
		if ctx.Err() != nil {
			return nil, apperrors.NewContextCancelled("llm generate", err)
		}
		return nil, apperrors.NewAgentLLMFailed(currentModel, attempts, retryable(err), err)
	}

	if len(resp.Choices) == 0 {
		a.observe("chat", "error")
		return nil, apperrors.ErrAgentNoResponse
	}

	response := &Response{
		Content: strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:   currentModel,
	}

	a.observe("chat", "ok")
	a.logger.Debug("LLM response generated",
		zap.String("model", currentModel),
		zap.Int("content_length", len(response.Content)),
	)

	return response, nil
}

// retryable reports whether a failed request is worth another attempt.
// Rate limits and server errors are; other client errors are not.
func retryable(err error) bool {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	default:
		// Transport failures carry no status
		return true
	}
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
