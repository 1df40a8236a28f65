// ABOUTME: Tests for the summarization client against a fake chat endpoint
// ABOUTME: Checks request shape, decoding settings and error handling
package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   int      `json:"max_tokens"`
	Seed        *int     `json:"seed"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newFakeServer(t *testing.T, reply string, status int, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": choicesFor(reply),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func choicesFor(reply string) []map[string]any {
	if reply == "" {
		return []map[string]any{}
	}
	return []map[string]any{{
		"index":         0,
		"finish_reason": "stop",
		"message":       map[string]any{"role": "assistant", "content": reply},
	}}
}

func newTestClient(t *testing.T, baseURL string) *OpenAIClient {
	t.Helper()
	cfg := DefaultConfig("test-key")
	cfg.BaseURL = baseURL + "/"
	cfg.Timeout = 5 * time.Second
	c, err := NewOpenAIClientWithConfig(cfg)
	require.NoError(t, err)
	return c
}

func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("")
	assert.Error(t, err)

	c, err := NewOpenAIClient("k")
	require.NoError(t, err)
	assert.Equal(t, DefaultChatModel, c.Model())
}

func TestSummarize_RequestShape(t *testing.T) {
	var got capturedRequest
	srv := newFakeServer(t, "  The team agreed on a launch date.  ", http.StatusOK, &got)
	c := newTestClient(t, srv.URL)

	summary, err := c.Summarize(context.Background(), "long meeting notes", 30, 150)
	require.NoError(t, err)
	assert.Equal(t, "The team agreed on a launch date.", summary)

	assert.Equal(t, DefaultChatModel, got.Model)
	assert.Equal(t, 150, got.MaxTokens)
	require.NotNil(t, got.Seed)
	assert.Equal(t, DefaultSeed, *got.Seed)
	require.NotNil(t, got.Temperature, "temperature must be sent explicitly")
	assert.Less(t, *got.Temperature, 1e-6)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "between 30 and 150 tokens")
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "long meeting notes", got.Messages[1].Content)
}

func TestSummarize_NoChoices(t *testing.T) {
	srv := newFakeServer(t, "", http.StatusOK, nil)
	c := newTestClient(t, srv.URL)

	_, err := c.Summarize(context.Background(), "text", 30, 150)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestSummarize_APIError(t *testing.T) {
	srv := newFakeServer(t, "", http.StatusInternalServerError, nil)
	c := newTestClient(t, srv.URL)

	_, err := c.Summarize(context.Background(), "text", 30, 150)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}
