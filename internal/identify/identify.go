package identify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"GardenGenie/internal/llm"

	"github.com/rs/zerolog/log"
)

const identificationPrompt = `
Analyze this image and determine if it contains a plant, tree, shrub, or any gardening-related vegetation.

Respond with a JSON object in this exact format:

{
  "is_plant": true or false,
  "common_name": "Common name of the plant" or null,
  "confidence": "high" or "medium" or "low" or null,
  "message": "Descriptive message about what you see"
}

Guidelines:
- Set "is_plant" to true only if the image clearly shows a living plant, tree, shrub, flower, or gardening vegetation
- If it's a plant, provide the most accurate common name you can identify
- Set confidence based on how certain you are of the identification:
  - "high": Very confident in the identification
  - "medium": Fairly confident but could be similar species
  - "low": Uncertain, could be multiple possibilities
- If not a plant, set common_name and confidence to null
- Always provide a helpful message describing what you observe

Examples of what counts as plants: houseplants, garden plants, trees, shrubs, flowers, vegetables, herbs, succulents, etc.
Examples of what doesn't count: artificial plants, plant-printed items, drawings of plants, dead/dried plants unless clearly identifiable.`

const identifyMaxTokens = 300

// Identification is the vision model's verdict on an uploaded image.
type Identification struct {
	IsPlant    bool    `json:"is_plant"`
	CommonName *string `json:"common_name"`
	Confidence *string `json:"confidence"`
	Message    string  `json:"message"`
}

// ChatClient is the vision-capable chat-completion capability consumed by
// this package.
type ChatClient interface {
	Chat(ctx context.Context, req llm.ChatRequest) (*llm.Result, error)
}

// Service asks a vision-capable model whether an uploaded image depicts a
// plant. It reuses the shared extraction logic only; it does not touch
// classification, routing, or persistence.
type Service struct {
	client ChatClient
	model  string
}

func NewService(client ChatClient, visionModel string) *Service {
	return &Service{client: client, model: visionModel}
}

// ValidateImage checks uploaded image bytes against the configured size cap.
func ValidateImage(data []byte, maxMB int) error {
	if len(data) == 0 {
		return fmt.Errorf("uploaded file is empty")
	}
	if len(data) > maxMB*1024*1024 {
		return fmt.Errorf("image file too large, maximum size is %dMB", maxMB)
	}
	return nil
}

// Identify encodes the image as a base64 data URL, sends it to the vision
// model alongside the identification prompt, and parses the verdict.
func (s *Service) Identify(ctx context.Context, imageData []byte) (*Identification, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("no image data provided")
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageData)

	res, err := s.client.Chat(ctx, llm.ChatRequest{
		Model:       s.model,
		Messages:    []llm.Message{llm.ImageMessage(identificationPrompt, dataURL)},
		MaxTokens:   identifyMaxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("identification request failed: %w", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(res.Content), &keys); err != nil {
		log.Error().Err(err).Str("content", res.Content).Msg("failed to decode identification response")
		return nil, fmt.Errorf("failed to decode identification response: %w", err)
	}
	if _, ok := keys["is_plant"]; !ok {
		return nil, fmt.Errorf("identification response missing key is_plant")
	}
	if _, ok := keys["message"]; !ok {
		return nil, fmt.Errorf("identification response missing key message")
	}

	var result Identification
	if err := json.Unmarshal([]byte(res.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode identification response: %w", err)
	}

	log.Info().Bool("is_plant", result.IsPlant).Str("name", stringOrEmpty(result.CommonName)).Msg("plant identification completed")
	return &result, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
