package plantcare

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// ValidationResult is the structured outcome of a care-structure check.
// The caller decides whether warnings are acceptable (they are) while
// errors block persistence.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateCareStructure deep-checks a legacy-dialect care payload: every
// phase must map to a list of step objects, every step needs a non-empty
// description, priorities must lie in the known enum (drift is only
// warned about), and missing timing metadata is flagged without failing.
// Errors accumulate across phases; the function never panics.
func ValidateCareStructure(careDetails any, plantName string) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}}

	care, ok := careDetails.(map[string]any)
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Care details must be an object, got %T", careDetails))
		return result
	}

	if len(care) == 0 {
		result.Warnings = append(result.Warnings, "Care details object is empty")
		return result
	}

	totalInstructions := 0

	for phase, value := range care {
		steps, ok := value.([]any)
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Care phase '%s' must contain a list of steps, got %T", phase, value))
			continue
		}

		if len(steps) == 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Care phase '%s' has no care instructions", phase))
			continue
		}

		for i, raw := range steps {
			stepContext := fmt.Sprintf("Care phase '%s', step %d", phase, i+1)

			step, ok := raw.(map[string]any)
			if !ok {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("%s: Step must be an object, got %T", stepContext, raw))
				continue
			}

			desc, _ := step["step"].(string)
			if strings.TrimSpace(desc) == "" {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing or empty 'step' description", stepContext))
			}

			if priority, ok := step["priority"]; ok && priority != nil && priority != "" {
				if !priorityInEnum(priority) {
					result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Invalid priority '%v'. Expected one of %v", stepContext, priority, ValidPriorities))
				}
			}

			if !truthyString(step["months"]) && !truthyString(step["timing"]) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: No timing information (months or timing) provided", stepContext))
			}

			totalInstructions++
		}
	}

	if totalInstructions == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No valid care instructions found in any care phase")
	}

	log.Debug().Str("plant", plantName).Bool("valid", result.Valid).
		Strs("errors", result.Errors).Strs("warnings", result.Warnings).
		Msg("care structure validation")
	return result
}

func priorityInEnum(priority any) bool {
	s, ok := priority.(string)
	if !ok || s == "" {
		return false
	}
	for _, p := range ValidPriorities {
		if s == p {
			return true
		}
	}
	return false
}

func truthyString(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}
