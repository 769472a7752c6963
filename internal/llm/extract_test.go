package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	content := "```json\n{\"is_plant\": true}\n```"
	require.Equal(t, `{"is_plant": true}`, ExtractJSON(content))
}

func TestExtractJSONUntaggedFence(t *testing.T) {
	content := "```\n{\"a\": 1}\n```"
	require.Equal(t, `{"a": 1}`, ExtractJSON(content))
}

func TestExtractJSONFenceWithSurroundingProse(t *testing.T) {
	content := "Here is the result:\n```json\n{\"a\": 1}\n```\nLet me know if you need anything else."
	require.Equal(t, `{"a": 1}`, ExtractJSON(content))
}

func TestExtractJSONNoFence(t *testing.T) {
	require.Equal(t, `{"a": 1}`, ExtractJSON("  {\"a\": 1}\n"))
}

func TestExtractJSONEmpty(t *testing.T) {
	require.Equal(t, "", ExtractJSON("   "))
}

func TestExtractJSONIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\": 1}\n```",
		"{\"a\": 1}",
		"no json here",
	}
	for _, in := range inputs {
		once := ExtractJSON(in)
		require.Equal(t, once, ExtractJSON(once))
	}
}
