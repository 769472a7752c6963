package plantcare

import (
	"context"
	"fmt"

	"GardenGenie/internal/llm"

	"github.com/rs/zerolog/log"
)

const (
	generateMaxTokens   = 3000
	generateTemperature = 0.2
)

// Generator formats a category-specific prompt, invokes the model, and
// validates the returned object against the required top-level keys.
type Generator struct {
	client ChatClient
}

func NewGenerator(client ChatClient) *Generator {
	return &Generator{client: client}
}

// Generate produces a care instruction document for the given plant and
// zone. Regenerating a multi-hundred-token document is expensive, so this
// path has no internal retry: a truncated, unparseable, or key-deficient
// response is a terminal failure for the request, and the caller must not
// persist or return partial data.
func (g *Generator) Generate(ctx context.Context, plantName, userZone string, promptGroup PromptGroup, group Group) (*Document, error) {
	prompt, err := BuildCarePrompt(promptGroup, plantName, userZone, group)
	if err != nil {
		return nil, err
	}

	res, err := g.client.Chat(ctx, llm.ChatRequest{
		Messages:    []llm.Message{llm.TextMessage("user", prompt)},
		MaxTokens:   generateMaxTokens,
		Temperature: generateTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("care generation request failed: %w", err)
	}

	plantType := humanFriendly[promptGroup]
	if att := llm.CheckCompletion(res.Content); att.Status != llm.AttemptSuccess {
		log.Warn().
			Str("plant_type", plantType).
			Int("content_length", len(res.Content)).
			Str("reason", att.Reason).
			Msg("LLM care response rejected")
		return nil, fmt.Errorf("care generation for %s failed: %s", plantType, att.Reason)
	}

	doc, err := ParseDocument(res.Content, group)
	if err != nil {
		log.Error().Err(err).Str("plant_type", plantType).Str("content", res.Content).Msg("invalid care response from LLM")
		return nil, fmt.Errorf("care generation for %s failed: %w", plantType, err)
	}

	// Capture provider output for downstream traceability.
	doc.RawResponse = res.Raw
	doc.RawText = res.RawText
	if doc.RawText == "" {
		doc.RawText = res.Content
	}
	doc.ModelUsed = res.Model
	if doc.ModelUsed == "" {
		doc.ModelUsed = g.client.Model()
	}

	log.Info().Str("model", doc.ModelUsed).Str("plant_type", plantType).Str("plant", plantName).Msg("LLM returned valid care JSON")
	return doc, nil
}
