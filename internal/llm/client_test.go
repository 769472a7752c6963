package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chatEnvelope(content string) string {
	env := map[string]any{
		"id":    "gen-1",
		"model": "openai/gpt-5-mini",
		"choices": []any{
			map[string]any{
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
	b, _ := json.Marshal(env)
	return string(b)
}

func TestChat(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(chatEnvelope(`{"is_plant": true, "plant_group": "Herbs"}`)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "openai/gpt-5-mini", 2*time.Second)
	res, err := c.Chat(context.Background(), ChatRequest{
		Messages:  []Message{TextMessage("user", "classify basil")},
		MaxTokens: 100,
	})
	require.NoError(t, err)
	require.Equal(t, `{"is_plant": true, "plant_group": "Herbs"}`, res.Content)
	require.Equal(t, "openai/gpt-5-mini", res.Model)
	require.Equal(t, "/chat/completions", gotPath)
	require.Equal(t, "Bearer sk-test", gotAuth)
	// The default model is filled in when the request leaves it empty.
	require.Equal(t, "openai/gpt-5-mini", gotBody["model"])
}

func TestChatStripsFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(chatEnvelope("```json\n{\"a\": 1}\n```")))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "m", 2*time.Second)
	res, err := c.Chat(context.Background(), ChatRequest{Messages: []Message{TextMessage("user", "hi")}})
	require.NoError(t, err)
	require.Equal(t, `{"a": 1}`, res.Content)
	require.Equal(t, "```json\n{\"a\": 1}\n```", res.RawText)
}

func TestChatPrefersParsedChannel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		body := `{
		  "id": "gen-2",
		  "model": "m",
		  "choices": [{
		    "message": {"role": "assistant", "content": "see parsed", "parsed": {"a": 1}},
		    "finish_reason": "stop"
		  }]
		}`
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "m", 2*time.Second)
	res, err := c.Chat(context.Background(), ChatRequest{Messages: []Message{TextMessage("user", "hi")}})
	require.NoError(t, err)
	require.JSONEq(t, `{"a": 1}`, res.Content)
}

func TestChatMissingAPIKey(t *testing.T) {
	c := NewClient("http://unused", "", "m", 2*time.Second)
	_, err := c.Chat(context.Background(), ChatRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "API key")
}

func TestChatNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "m", 2*time.Second)
	_, err := c.Chat(context.Background(), ChatRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-200")
}

func TestChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id": "gen-3", "model": "m", "choices": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk-test", "m", 2*time.Second)
	_, err := c.Chat(context.Background(), ChatRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no choices")
}
