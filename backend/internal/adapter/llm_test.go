package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "linkedinsight/backend/pkg/errors"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *LLMAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	a := NewLLMAdapter(server.URL+"/v1", "test-key", "gpt-4o-mini", "text-embedding-3-large")
	a.backoff = time.Millisecond
	return a
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
}

func TestGenerate_TrimsContent(t *testing.T) {
	var captured map[string]any
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		writeCompletion(w, "  Week 1: Python basics \n")
	})

	resp, err := a.Generate(context.Background(), "system", "user", GenerateOptions{MaxTokens: 256})
	require.NoError(t, err)
	assert.Equal(t, "Week 1: Python basics", resp.Content)
	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.EqualValues(t, 256, captured["max_tokens"])
}

func TestGenerate_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		writeCompletion(w, "ok")
	})

	var outcomes []string
	a.SetObserver(func(kind, status string) { outcomes = append(outcomes, kind+":"+status) })

	resp, err := a.Generate(context.Background(), "s", "u", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"chat:ok"}, outcomes)
}

func TestGenerate_FailsAfterMaxRetries(t *testing.T) {
	var calls int32
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"message":"down","type":"server_error"}}`))
	})

	_, err := a.Generate(context.Background(), "s", "u", GenerateOptions{})
	require.Error(t, err)
	var llmErr *apperrors.ErrAgentLLMFailed
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, maxRetries, llmErr.Attempts)
	assert.True(t, llmErr.Retryable)
	assert.EqualValues(t, maxRetries, atomic.LoadInt32(&calls))
}

func TestGenerate_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"unknown model","type":"invalid_request_error"}}`))
	})

	_, err := a.Generate(context.Background(), "s", "u", GenerateOptions{})
	require.Error(t, err)
	var llmErr *apperrors.ErrAgentLLMFailed
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, 1, llmErr.Attempts)
	assert.False(t, apperrors.IsRetryable(err))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestGenerate_RateLimitRetried(t *testing.T) {
	var calls int32
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
			return
		}
		writeCompletion(w, "ok")
	})

	resp, err := a.Generate(context.Background(), "s", "u", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGenerate_NoChoices(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	})

	_, err := a.Generate(context.Background(), "s", "u", GenerateOptions{})
	assert.ErrorIs(t, err, apperrors.ErrAgentNoResponse)
}

func TestGenerate_ContextCancelled(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Generate(ctx, "s", "u", GenerateOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeContext))
}

func TestSetModel(t *testing.T) {
	a := NewLLMAdapter("", "k", "gpt-4o-mini", "text-embedding-3-large")
	a.SetModel("")
	assert.Equal(t, "gpt-4o-mini", a.GetModel())
	a.SetModel("gpt-4o")
	assert.Equal(t, "gpt-4o", a.GetModel())
}

// TestLLMAdapter_Live requires OPENAI_API_KEY
func TestLLMAdapter_Live(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	a := NewLLMAdapter("https://api.openai.com/v1", key, "gpt-4o-mini", "text-embedding-3-small")
	resp, err := a.Generate(context.Background(), "You are a helpful assistant.", "Say hello in one sentence.", GenerateOptions{MaxTokens: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Content)
}
