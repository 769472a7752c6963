package plantcare

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func step(desc string, extra map[string]any) map[string]any {
	m := map[string]any{"step": desc}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func TestValidateCareStructureWellFormed(t *testing.T) {
	care := map[string]any{
		"Spring": []any{
			step("Prune dead branches", map[string]any{"months": "Mar-Apr", "priority": "must do"}),
		},
		"Summer": []any{
			step("Deep water weekly", map[string]any{"timing": "during heat waves", "priority": "good to do"}),
		},
	}
	result := ValidateCareStructure(care, "Rose")
	require.True(t, result.Valid)
	require.Empty(t, result.Errors)
	require.Empty(t, result.Warnings)
}

func TestValidateCareStructureNotAnObject(t *testing.T) {
	result := ValidateCareStructure([]any{"spring"}, "Rose")
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
}

func TestValidateCareStructureEmptyObject(t *testing.T) {
	result := ValidateCareStructure(map[string]any{}, "Rose")
	require.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
}

func TestValidateCareStructurePhaseNotAList(t *testing.T) {
	care := map[string]any{
		"Spring": "prune things",
		"Summer": []any{step("Water deeply", map[string]any{"months": "Jun"})},
	}
	result := ValidateCareStructure(care, "Rose")
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "Spring")
}

func TestValidateCareStructureEmptyPhaseWarns(t *testing.T) {
	care := map[string]any{
		"Winter": []any{},
		"Spring": []any{step("Fertilize", map[string]any{"months": "Apr"})},
	}
	result := ValidateCareStructure(care, "Rose")
	require.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
}

func TestValidateCareStructureMissingDescription(t *testing.T) {
	care := map[string]any{
		"Spring": []any{
			map[string]any{"months": "Mar"},
			step("  ", map[string]any{"months": "Apr"}),
		},
	}
	result := ValidateCareStructure(care, "Rose")
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
}

func TestValidateCareStructurePriorityDriftWarns(t *testing.T) {
	care := map[string]any{
		"Spring": []any{
			step("Prune", map[string]any{"months": "Mar", "priority": "critical"}),
		},
	}
	result := ValidateCareStructure(care, "Rose")
	require.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	require.Contains(t, result.Warnings[0], "critical")
}

func TestValidateCareStructureAbsentPriorityAccepted(t *testing.T) {
	care := map[string]any{
		"Spring": []any{
			step("Prune", map[string]any{"months": "Mar"}),
			step("Mulch", map[string]any{"months": "Apr", "priority": nil}),
			step("Weed", map[string]any{"months": "May", "priority": ""}),
		},
	}
	result := ValidateCareStructure(care, "Rose")
	require.True(t, result.Valid)
	require.Empty(t, result.Warnings)
}

func TestValidateCareStructureMissingTimingWarns(t *testing.T) {
	care := map[string]any{
		"Spring": []any{step("Prune", nil)},
	}
	result := ValidateCareStructure(care, "Rose")
	require.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	require.Contains(t, result.Warnings[0], "timing")
}

func TestValidateCareStructureStepNotAnObject(t *testing.T) {
	care := map[string]any{
		"Spring": []any{"just a string", step("Water", map[string]any{"months": "May"})},
	}
	result := ValidateCareStructure(care, "Rose")
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
}

func TestValidateCareStructureNoValidInstructions(t *testing.T) {
	care := map[string]any{
		"Spring": "not a list",
		"Summer": []any{"also wrong"},
	}
	result := ValidateCareStructure(care, "Rose")
	require.False(t, result.Valid)
	// One error per malformed entry plus the global no-instructions error.
	require.Len(t, result.Errors, 3)
}

func TestValidateCareStructureAddingValidStepNeverInvalidates(t *testing.T) {
	care := map[string]any{
		"Spring": []any{step("Prune", map[string]any{"months": "Mar"})},
	}
	require.True(t, ValidateCareStructure(care, "Rose").Valid)

	care["Spring"] = append(care["Spring"].([]any),
		step("Mulch", map[string]any{"months": "Apr", "priority": "optional"}))
	require.True(t, ValidateCareStructure(care, "Rose").Valid)
}

func TestValidateCareStructureAccumulatesAcrossPhases(t *testing.T) {
	care := map[string]any{
		"Spring": "wrong",
		"Summer": 42,
		"Fall":   []any{step("Rake leaves", map[string]any{"months": "Oct"})},
	}
	result := ValidateCareStructure(care, "Maple")
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
}
