package plantcare

import (
	"context"
	"encoding/json"
	"fmt"

	"GardenGenie/internal/llm"

	"github.com/rs/zerolog/log"
)

// ChatClient is the chat-completion capability the care pipeline consumes.
// *llm.Client satisfies it; tests substitute fakes.
type ChatClient interface {
	Chat(ctx context.Context, req llm.ChatRequest) (*llm.Result, error)
	Model() string
}

// Classification is the terminal outcome of a classification request.
// Group is non-nil iff IsPlant is true. A determined "not a plant" is a
// valid result, not an error.
type Classification struct {
	IsPlant bool   `json:"is_plant"`
	Group   *Group `json:"plant_group"`
}

const (
	classifyMaxTokens   = 100
	classifyTemperature = 0.1
)

// classificationSchema constrains the model to emit {is_plant, plant_group}
// with plant_group drawn from the closed category enum or null.
var classificationSchema = &llm.ResponseFormat{
	Type: "json_schema",
	JSONSchema: llm.JSONSchema{
		Name:   "PlantGroupClassification",
		Strict: true,
		Schema: &llm.Schema{
			Type:                 "object",
			AdditionalProperties: boolPtr(false),
			Properties: map[string]*llm.Schema{
				"is_plant": {Type: "boolean"},
				"plant_group": {
					// Nullable: the null enum member needs the
					// type union to be satisfiable.
					Type: []string{"string", "null"},
					Enum: groupEnumValues(),
				},
			},
			Required: []string{"is_plant", "plant_group"},
		},
	},
}

func groupEnumValues() []any {
	values := make([]any, 0, len(AllGroups)+1)
	for _, g := range AllGroups {
		values = append(values, string(g))
	}
	values = append(values, nil)
	return values
}

func boolPtr(b bool) *bool { return &b }

// Classifier determines whether an input names a real plant and which care
// category it belongs to, retrying malformed or truncated model output up
// to a fixed bound.
type Classifier struct {
	client      ChatClient
	maxAttempts int
	structured  bool
}

// NewClassifier builds a classifier. structured controls whether requests
// carry the json_schema response format; backends without structured
// output support still work through the retry loop's shape checks.
func NewClassifier(client ChatClient, maxAttempts int, structured bool) *Classifier {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Classifier{client: client, maxAttempts: maxAttempts, structured: structured}
}

// Classify requests a schema-constrained completion and parses the result.
// Retries are synchronous and in-line; each attempt is a full blocking
// round trip. Exhausting all attempts without a valid result is an error,
// distinct from a successfully determined "not a plant" outcome.
func (c *Classifier) Classify(ctx context.Context, plantName string) (*Classification, error) {
	req := llm.ChatRequest{
		Messages:    []llm.Message{llm.TextMessage("user", BuildClassificationPrompt(plantName))},
		MaxTokens:   classifyMaxTokens,
		Temperature: classifyTemperature,
	}
	if c.structured {
		req.ResponseFormat = classificationSchema
	}

	var lastReason string
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		res, err := c.client.Chat(ctx, req)
		if err != nil {
			// Transient upstream failure; no point burning the
			// remaining attempts on the same network condition.
			return nil, fmt.Errorf("classification request failed: %w", err)
		}

		result, att := evaluateClassification(res.Content)
		if att.Status == llm.AttemptSuccess {
			if result.IsPlant {
				log.Info().Str("plant", plantName).Str("group", string(*result.Group)).Msg("plant classified")
			} else {
				log.Info().Str("plant", plantName).Msg("input classified as not a plant")
			}
			return result, nil
		}

		lastReason = att.Reason
		if !llm.ShouldRetry(att, attempt, c.maxAttempts) {
			break
		}
		log.Warn().
			Str("plant", plantName).
			Int("attempt", attempt+1).
			Str("reason", att.Reason).
			Msg("classification attempt discarded, retrying")
	}

	return nil, fmt.Errorf("classification failed after %d attempts: %s", c.maxAttempts, lastReason)
}

// evaluateClassification applies the per-attempt checks: truncation
// heuristic, JSON parse, required keys, and logical consistency of the
// is_plant/plant_group pair.
func evaluateClassification(content string) (*Classification, llm.Attempt) {
	if att := llm.CheckCompletion(content); att.Status != llm.AttemptSuccess {
		return nil, att
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &keys); err != nil {
		return nil, llm.Retryable(fmt.Sprintf("JSON parse failed: %v", err))
	}
	if _, ok := keys["is_plant"]; !ok {
		return nil, llm.Retryable("missing required key is_plant")
	}
	if _, ok := keys["plant_group"]; !ok {
		return nil, llm.Retryable("missing required key plant_group")
	}

	var result Classification
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, llm.Retryable(fmt.Sprintf("JSON parse failed: %v", err))
	}

	switch {
	case result.IsPlant && result.Group == nil:
		return nil, llm.Retryable("is_plant is true but plant_group is null")
	case !result.IsPlant && result.Group != nil:
		return nil, llm.Retryable("plant_group present for non-plant input")
	case result.Group != nil && !result.Group.Valid():
		return nil, llm.Retryable(fmt.Sprintf("plant_group %q is not a known category", *result.Group))
	}

	return &result, llm.Success()
}
