package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// --- OpenRouter API Request/Response Structs ---

type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type Message struct {
	Role string `json:"role"`
	// Content is either a plain string or a []ContentPart for
	// multimodal messages.
	Content any `json:"content"`
}

type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// ResponseFormat requests schema-constrained decoding from backends that
// support structured outputs.
type ResponseFormat struct {
	Type       string     `json:"type"`
	JSONSchema JSONSchema `json:"json_schema"`
}

type JSONSchema struct {
	Name   string  `json:"name"`
	Strict bool    `json:"strict"`
	Schema *Schema `json:"schema"`
}

// Schema describes the JSON structure the model must emit. Pointers allow
// recursive definitions. Type is a single type name or a []string union
// (e.g. ["string", "null"] for a nullable field; a bare enum with a null
// member never validates against type "string" under strict decoding).
type Schema struct {
	Type                 any                `json:"type"`
	Description          string             `json:"description,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string          `json:"role"`
			Content string          `json:"content"`
			Parsed  json.RawMessage `json:"parsed,omitempty"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Result carries one completion back to the caller. Content is the
// best-effort JSON payload; RawText and Raw preserve the untouched
// provider output for downstream traceability.
type Result struct {
	// Content is ready for json.Unmarshal: the provider-native parsed
	// object when present, otherwise the fence-stripped message text.
	Content string
	// RawText is the message text exactly as returned.
	RawText string
	// Parsed is the provider-native structured object, if any.
	Parsed json.RawMessage
	// Raw is the full provider response envelope.
	Raw json.RawMessage
	// Model is the model the provider reports having used.
	Model string
}

// Client is a chat-completion client for the OpenRouter API. It is
// constructed once at startup and shared by reference; it holds no
// per-request mutable state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient builds a Client with the given credentials and timeout.
func NewClient(baseURL, apiKey, defaultModel string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      defaultModel,
	}
}

// Model returns the configured default model identifier.
func (c *Client) Model() string {
	return c.model
}

// Chat sends one chat-completion request and returns the first choice.
// The call blocks until completion, failure, or timeout; there is no
// internal retry at this layer.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is missing")
	}
	if req.Model == "" {
		req.Model = c.model
	}

	payloadBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("HTTP-Referer", "http://localhost")
	httpReq.Header.Set("X-Title", "Plant Care API")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("LLM API returned non-200 status")
		return nil, fmt.Errorf("API returned non-200 status: %s", resp.Status)
	}

	var envelope chatResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Choices) == 0 {
		return nil, fmt.Errorf("no choices found in LLM response")
	}

	msg := envelope.Choices[0].Message
	result := &Result{
		RawText: msg.Content,
		Parsed:  msg.Parsed,
		Raw:     json.RawMessage(body),
		Model:   envelope.Model,
	}

	// Prefer the provider-native parsed object over textual extraction;
	// it sidesteps truncation artifacts in the textual channel.
	if len(msg.Parsed) > 0 {
		result.Content = string(msg.Parsed)
	} else {
		result.Content = ExtractJSON(msg.Content)
	}

	return result, nil
}

// TextMessage builds a plain user message.
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: text}
}

// ImageMessage builds a user message carrying prompt text plus one
// base64 data-URL encoded image.
func ImageMessage(text, dataURL string) Message {
	return Message{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: text},
			{Type: "image_url", ImageURL: &ImageURL{URL: dataURL}},
		},
	}
}
