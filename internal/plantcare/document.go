package plantcare

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// PlanKind discriminates the two mutually exclusive care-plan dialects a
// generated document can carry.
type PlanKind int

const (
	// PlanNone means the document carries no care plan at all.
	PlanNone PlanKind = iota
	// PlanLegacy is the flat phase-name -> step-list dialect.
	PlanLegacy
	// PlanTabbed is the current style/tabs dialect.
	PlanTabbed
)

// Valid step priorities. Model vocabulary drift outside this set is a
// validation warning, not an error.
var ValidPriorities = []string{"must do", "good to do", "optional"}

// Step is one care instruction in the legacy dialect.
type Step struct {
	Step     string  `json:"step"`
	Months   *string `json:"months,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Timing   *string `json:"timing,omitempty"`
}

// Item is one care instruction in the tabbed dialect.
type Item struct {
	Text     string  `json:"text"`
	When     *string `json:"when,omitempty"`
	Priority *string `json:"priority,omitempty"`
}

// Tab groups items under a lifecycle, season, or indoor bucket.
type Tab struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Items []Item `json:"items"`
}

// TabbedPlan is the current care-plan dialect.
type TabbedPlan struct {
	Style string `json:"style"` // seasons | indoor | lifecycle
	Tabs  []Tab  `json:"tabs"`
}

// Document is the model-generated care payload for one plant. Exactly one
// plan variant is populated, discriminated by PlanKind.
type Document struct {
	PlantName       string
	Description     *string
	Type            *string
	Sun             *string
	ZoneSuitability *string
	Seasonality     *string

	SeedStartingMonth *string
	PlantingMonth     *string
	// Flat step lists predating the seed_starting/planting JSONB blocks;
	// still persisted to their own columns.
	SeedStartingInstructions json.RawMessage
	PlantingInstructions     json.RawMessage
	SeedStarting             json.RawMessage
	Planting                 json.RawMessage
	Requirements             map[string]any

	PlanKind PlanKind
	// Legacy keeps the raw shape so the structure validator can report
	// malformed phases instead of failing the whole parse.
	Legacy map[string]any
	Tabbed *TabbedPlan

	Group Group

	// Payload is the full extracted JSON object, returned verbatim to
	// the HTTP caller.
	Payload json.RawMessage
	// RawResponse and RawText capture the provider output for
	// traceability; they are stored, not interpreted.
	RawResponse json.RawMessage
	RawText     string
	ModelUsed   string
}

// documentBody is the typed view of the generated JSON.
type documentBody struct {
	PlantName         string          `json:"plantName"`
	Description       *string         `json:"description"`
	Type              *string         `json:"type"`
	Sun               *string         `json:"sun"`
	ZoneSuitability   *string         `json:"zoneSuitability"`
	Seasonality       *string         `json:"seasonality"`
	SeedStartingMonth        *string         `json:"seedStartingMonth"`
	PlantingMonth            *string         `json:"plantingMonth"`
	SeedStartingInstructions json.RawMessage `json:"seedStartingInstructions"`
	PlantingInstructions     json.RawMessage `json:"plantingInstructions"`
	SeedStarting             json.RawMessage `json:"seed_starting"`
	Planting                 json.RawMessage `json:"planting"`
	Requirements      map[string]any  `json:"requirements"`
	Care              map[string]any  `json:"care"`
	CarePlan          json.RawMessage `json:"care_plan"`
}

// ParseDocument parses generated content into a Document, enforcing the
// required top-level keys: plantName plus either a care_plan/requirements
// pair (current dialect) or care (legacy).
func ParseDocument(content string, group Group) (*Document, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &keys); err != nil {
		return nil, fmt.Errorf("failed to decode JSON response: %w", err)
	}

	hasCarePlan := rawPresent(keys["care_plan"])
	hasRequirements := rawPresent(keys["requirements"])
	hasLegacyCare := rawPresent(keys["care"])

	if _, ok := keys["plantName"]; !ok {
		return nil, fmt.Errorf("response missing essential key plantName")
	}
	if !(hasCarePlan && hasRequirements) && !hasLegacyCare {
		return nil, fmt.Errorf("response missing essential keys: need care_plan+requirements or care")
	}

	var body documentBody
	if err := json.Unmarshal([]byte(content), &body); err != nil {
		return nil, fmt.Errorf("failed to decode JSON response: %w", err)
	}
	if strings.TrimSpace(body.PlantName) == "" {
		return nil, fmt.Errorf("response has empty plantName")
	}

	doc := &Document{
		PlantName:         body.PlantName,
		Description:       body.Description,
		Type:              body.Type,
		Sun:               resolveSun(body.Sun, body.Requirements),
		ZoneSuitability:   body.ZoneSuitability,
		Seasonality:       body.Seasonality,
		SeedStartingMonth:        body.SeedStartingMonth,
		PlantingMonth:            body.PlantingMonth,
		SeedStartingInstructions: body.SeedStartingInstructions,
		PlantingInstructions:     body.PlantingInstructions,
		SeedStarting:             body.SeedStarting,
		Planting:                 body.Planting,
		Requirements:      body.Requirements,
		Group:             group,
		Payload:           json.RawMessage(content),
		PlanKind:          PlanNone,
	}

	switch {
	case hasCarePlan:
		doc.PlanKind = PlanTabbed
		var plan TabbedPlan
		if err := json.Unmarshal(body.CarePlan, &plan); err != nil {
			// Tolerated: an unreadable care_plan yields an empty
			// tabbed plan rather than failing generation.
			log.Warn().Err(err).Str("plant", body.PlantName).Msg("care_plan is not in the expected shape, skipping ingestion")
		} else {
			doc.Tabbed = &plan
		}
	case hasLegacyCare:
		doc.PlanKind = PlanLegacy
		doc.Legacy = body.Care
	}

	return doc, nil
}

// resolveSun prefers the top-level sun value and falls back to
// requirements.sun.
func resolveSun(sun *string, requirements map[string]any) *string {
	if sun != nil && strings.TrimSpace(*sun) != "" {
		return sun
	}
	if s, ok := requirements["sun"].(string); ok && strings.TrimSpace(s) != "" {
		return &s
	}
	return nil
}

func rawPresent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null"
}

// InstructionRow is one persisted care step, pre-flattened from either
// dialect.
type InstructionRow struct {
	Phase       string  `json:"care_phase"`
	Months      *string `json:"months"`
	Description string  `json:"step_description"`
	Priority    *string `json:"priority"`
	Order       int     `json:"order_within_season"`
}

// FlattenInstructions converts the document's plan into the persisted row
// shape, pattern-matching on the plan variant. It returns the rows and the
// count of entries skipped as invalid.
func (d *Document) FlattenInstructions() ([]InstructionRow, int) {
	switch d.PlanKind {
	case PlanTabbed:
		return d.flattenTabbed()
	case PlanLegacy:
		return d.flattenLegacy()
	default:
		return nil, 0
	}
}

// phaseForTab stores the tab label directly as the phase name, falling
// back to the key, then to "General".
func phaseForTab(tab Tab) string {
	if label := strings.TrimSpace(tab.Label); label != "" {
		return label
	}
	if key := strings.TrimSpace(tab.Key); key != "" {
		return key
	}
	return "General"
}

func (d *Document) flattenTabbed() ([]InstructionRow, int) {
	var rows []InstructionRow
	skipped := 0
	if d.Tabbed == nil {
		return rows, skipped
	}
	for _, tab := range d.Tabbed.Tabs {
		phase := phaseForTab(tab)
		for i, item := range tab.Items {
			text := strings.TrimSpace(item.Text)
			if text == "" {
				skipped++
				continue
			}
			rows = append(rows, InstructionRow{
				Phase:       phase,
				Months:      item.When,
				Description: text,
				Priority:    item.Priority,
				Order:       i + 1,
			})
		}
	}
	return rows, skipped
}

func (d *Document) flattenLegacy() ([]InstructionRow, int) {
	var rows []InstructionRow
	skipped := 0
	for phase, value := range d.Legacy {
		steps, ok := value.([]any)
		if !ok {
			log.Error().Str("phase", phase).Msgf("invalid care phase data: expected list, got %T", value)
			skipped++
			continue
		}
		for i, raw := range steps {
			step, ok := raw.(map[string]any)
			if !ok {
				log.Error().Str("phase", phase).Int("position", i+1).Msgf("invalid step data: expected object, got %T", raw)
				skipped++
				continue
			}
			desc, _ := step["step"].(string)
			desc = strings.TrimSpace(desc)
			if desc == "" {
				log.Error().Str("phase", phase).Int("position", i+1).Msg("missing or invalid step description")
				skipped++
				continue
			}
			rows = append(rows, InstructionRow{
				Phase:       phase,
				Months:      optionalString(step["months"]),
				Description: desc,
				Priority:    optionalString(step["priority"]),
				Order:       i + 1,
			})
		}
	}
	return rows, skipped
}

func optionalString(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}
