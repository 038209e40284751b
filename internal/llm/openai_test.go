package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteapi/internal/config"
	"quoteapi/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *llm.OpenAIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := llm.NewOpenAIClient(config.LLMConfig{
		APIKey:      "sk-test",
		BaseURL:     server.URL + "/v1",
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   4000,
	}, llm.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client
}

func completion(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-123",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(`{"service_type":"HVAC"}`))
	})

	resp, err := client.Complete(context.Background(), llm.Request{
		Purpose: "structured",
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "system"},
			{Role: llm.RoleUser, Content: "quote text"},
		},
		JSON: true,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"service_type":"HVAC"}`, resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.InDelta(t, 0.3, got["temperature"], 0.0001)
	assert.Equal(t, float64(4000), got["max_tokens"])
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
	assert.Len(t, got["messages"], 2)
}

func TestOpenAIClient_RequestOverrides(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(completion("plain text"))
	})

	_, err := client.Complete(context.Background(), llm.Request{
		Purpose:   "section",
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: "x"}},
		MaxTokens: 1500,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1500), got["max_tokens"])
	assert.NotContains(t, got, "response_format")
}

func TestOpenAIClient_RateLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached for gpt-4o-mini on tokens per min (TPM)","type":"tokens","code":"rate_limit_exceeded"}}`))
	})

	_, err := client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "x"}},
	})
	require.Error(t, err)

	var pe *llm.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
	assert.True(t, llm.IsRateLimit(err))
}

func TestOpenAIClient_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	})

	_, err := client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "x"}},
	})
	require.Error(t, err)
	assert.False(t, llm.IsRateLimit(err))
}

func TestOpenAIClient_EmptyCompletion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completion(""))
	})

	_, err := client.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "x"}},
	})
	assert.ErrorIs(t, err, llm.ErrEmptyCompletion)
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := llm.NewOpenAIClient(config.LLMConfig{Model: "gpt-4o-mini"})
	assert.Error(t, err)
}
