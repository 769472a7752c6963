package plantcare

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	chat := &fakeChat{responses: []fakeResponse{{content: tabbedDoc}}}
	g := NewGenerator(chat)

	doc, err := g.Generate(context.Background(), "Tomato", "7a", PromptEdibleAnnuals, GroupVegetables)
	require.NoError(t, err)
	require.Equal(t, "Tomato", doc.PlantName)
	require.Equal(t, PlanTabbed, doc.PlanKind)
	require.Equal(t, GroupVegetables, doc.Group)
	// No provider model in the result, so the client default is recorded.
	require.Equal(t, "test-model", doc.ModelUsed)
	require.Equal(t, tabbedDoc, doc.RawText)

	require.Len(t, chat.requests, 1)
	require.Equal(t, 3000, chat.requests[0].MaxTokens)
}

func TestGenerateTruncatedResponseFails(t *testing.T) {
	chat := &fakeChat{responses: []fakeResponse{
		{content: `{"plantName": "Tomato", "requirements": {"sun": "Full`},
	}}
	g := NewGenerator(chat)

	_, err := g.Generate(context.Background(), "Tomato", "7a", PromptEdibleAnnuals, GroupVegetables)
	require.Error(t, err)
	require.Contains(t, err.Error(), "truncated")
	// No retry on the expensive generation path.
	require.Equal(t, 1, chat.calls)
}

func TestGenerateMissingKeysFails(t *testing.T) {
	chat := &fakeChat{responses: []fakeResponse{
		{content: `{"plantName": "Tomato", "requirements": {"sun": "Full sun"}}`},
	}}
	g := NewGenerator(chat)

	_, err := g.Generate(context.Background(), "Tomato", "7a", PromptEdibleAnnuals, GroupVegetables)
	require.Error(t, err)
	require.Contains(t, err.Error(), "essential keys")
}

func TestGenerateUpstreamError(t *testing.T) {
	chat := &fakeChat{responses: []fakeResponse{{err: errors.New("gateway timeout")}}}
	g := NewGenerator(chat)

	_, err := g.Generate(context.Background(), "Tomato", "7a", PromptEdibleAnnuals, GroupVegetables)
	require.Error(t, err)
	require.Contains(t, err.Error(), "care generation request failed")
}
