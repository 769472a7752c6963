package plantcare

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const tabbedDoc = `{
  "plantName": "Tomato",
  "description": "A warm-season annual grown for its fruit.",
  "type": "Annual vegetable",
  "sun": "Full sun",
  "seasonality": "Warm season",
  "seedStartingMonth": "March",
  "plantingMonth": "May",
  "requirements": {"sun": "Full sun", "water": "1-2 in/week"},
  "care_plan": {
    "style": "lifecycle",
    "tabs": [
      {
        "key": "seed_starting",
        "label": "Seed Starting",
        "items": [
          {"text": "Start seeds indoors", "when": "Mar", "priority": "must do"},
          {"text": "Harden off seedlings", "when": "Apr-May", "priority": "good to do"}
        ]
      },
      {
        "key": "harvest",
        "label": "",
        "items": [
          {"text": "Pick fruit when fully colored", "when": "Jul-Sep", "priority": "must do"}
        ]
      }
    ]
  }
}`

const legacyDoc = `{
  "plantName": "Rose",
  "description": "Classic flowering shrub.",
  "requirements": {"sun": "Full sun"},
  "care": {
    "Spring": [
      {"step": "Prune dead canes", "months": "Mar", "priority": "must do"},
      {"step": "Feed with balanced fertilizer", "months": "Apr"}
    ],
    "Summer": [
      {"step": "Deadhead spent blooms", "months": "Jun-Aug", "priority": "good to do"}
    ]
  }
}`

func TestParseDocumentTabbed(t *testing.T) {
	doc, err := ParseDocument(tabbedDoc, GroupVegetables)
	require.NoError(t, err)
	require.Equal(t, "Tomato", doc.PlantName)
	require.Equal(t, PlanTabbed, doc.PlanKind)
	require.NotNil(t, doc.Tabbed)
	require.Equal(t, "lifecycle", doc.Tabbed.Style)
	require.Len(t, doc.Tabbed.Tabs, 2)
	require.Equal(t, GroupVegetables, doc.Group)
	require.JSONEq(t, tabbedDoc, string(doc.Payload))
}

func TestParseDocumentLegacy(t *testing.T) {
	doc, err := ParseDocument(legacyDoc, GroupFloweringShrubs)
	require.NoError(t, err)
	require.Equal(t, PlanLegacy, doc.PlanKind)
	require.Nil(t, doc.Tabbed)
	require.Len(t, doc.Legacy, 2)
}

func TestParseDocumentMissingPlantName(t *testing.T) {
	_, err := ParseDocument(`{"care": {"Spring": []}}`, GroupHerbs)
	require.Error(t, err)
	require.Contains(t, err.Error(), "plantName")
}

func TestParseDocumentMissingPlanKeys(t *testing.T) {
	// care_plan without requirements is not enough for the tabbed
	// dialect, and there is no legacy care either.
	_, err := ParseDocument(`{"plantName": "Fern", "care_plan": {"style": "indoor", "tabs": []}}`, GroupHouseplants)
	require.Error(t, err)
}

func TestParseDocumentMalformedCarePlanTolerated(t *testing.T) {
	content := `{
	  "plantName": "Fern",
	  "requirements": {"sun": "Indirect light"},
	  "care_plan": {"style": "indoor", "tabs": "oops"}
	}`
	doc, err := ParseDocument(content, GroupHouseplants)
	require.NoError(t, err)
	require.Equal(t, PlanTabbed, doc.PlanKind)
	require.Nil(t, doc.Tabbed)

	rows, skipped := doc.FlattenInstructions()
	require.Empty(t, rows)
	require.Zero(t, skipped)
}

func TestParseDocumentLegacyInstructionLists(t *testing.T) {
	content := `{
	  "plantName": "Tomato",
	  "requirements": {"sun": "Full sun"},
	  "seedStartingInstructions": ["Sow 1/4 inch deep", "Keep at 70-80F"],
	  "plantingInstructions": ["Transplant after last frost"],
	  "care_plan": {"style": "lifecycle", "tabs": []}
	}`
	doc, err := ParseDocument(content, GroupVegetables)
	require.NoError(t, err)
	require.JSONEq(t, `["Sow 1/4 inch deep", "Keep at 70-80F"]`, string(doc.SeedStartingInstructions))
	require.JSONEq(t, `["Transplant after last frost"]`, string(doc.PlantingInstructions))
}

func TestParseDocumentSunFallsBackToRequirements(t *testing.T) {
	content := `{
	  "plantName": "Basil",
	  "requirements": {"sun": "Full sun"},
	  "care_plan": {"style": "lifecycle", "tabs": []}
	}`
	doc, err := ParseDocument(content, GroupHerbs)
	require.NoError(t, err)
	require.NotNil(t, doc.Sun)
	require.Equal(t, "Full sun", *doc.Sun)
}

func TestParseDocumentTopLevelSunWins(t *testing.T) {
	content := `{
	  "plantName": "Basil",
	  "sun": "Partial shade",
	  "requirements": {"sun": "Full sun"},
	  "care_plan": {"style": "lifecycle", "tabs": []}
	}`
	doc, err := ParseDocument(content, GroupHerbs)
	require.NoError(t, err)
	require.Equal(t, "Partial shade", *doc.Sun)
}

func TestFlattenTabbed(t *testing.T) {
	doc, err := ParseDocument(tabbedDoc, GroupVegetables)
	require.NoError(t, err)

	rows, skipped := doc.FlattenInstructions()
	require.Zero(t, skipped)
	require.Len(t, rows, 3)

	require.Equal(t, "Seed Starting", rows[0].Phase)
	require.Equal(t, "Start seeds indoors", rows[0].Description)
	require.Equal(t, 1, rows[0].Order)
	require.Equal(t, 2, rows[1].Order)

	// Blank label falls back to the tab key.
	require.Equal(t, "harvest", rows[2].Phase)
	require.Equal(t, 1, rows[2].Order)
}

func TestFlattenTabbedSkipsBlankItems(t *testing.T) {
	content := `{
	  "plantName": "Tulip",
	  "requirements": {},
	  "care_plan": {
	    "style": "seasons",
	    "tabs": [
	      {"key": "fall", "label": "Fall", "items": [
	        {"text": "Plant bulbs pointy side up", "when": "Oct"},
	        {"text": "   "}
	      ]}
	    ]
	  }
	}`
	doc, err := ParseDocument(content, GroupBulbs)
	require.NoError(t, err)

	rows, skipped := doc.FlattenInstructions()
	require.Equal(t, 1, skipped)
	require.Len(t, rows, 1)
	require.Equal(t, "Plant bulbs pointy side up", rows[0].Description)
}

func TestFlattenTabbedPhaseFallsBackToGeneral(t *testing.T) {
	tab := Tab{Key: "  ", Label: ""}
	require.Equal(t, "General", phaseForTab(tab))
}

func TestFlattenLegacy(t *testing.T) {
	doc, err := ParseDocument(legacyDoc, GroupFloweringShrubs)
	require.NoError(t, err)

	rows, skipped := doc.FlattenInstructions()
	require.Zero(t, skipped)
	require.Len(t, rows, 3)

	byPhase := map[string][]InstructionRow{}
	for _, r := range rows {
		byPhase[r.Phase] = append(byPhase[r.Phase], r)
	}
	require.Len(t, byPhase["Spring"], 2)
	require.Len(t, byPhase["Summer"], 1)

	require.Equal(t, "Prune dead canes", byPhase["Spring"][0].Description)
	require.Equal(t, 1, byPhase["Spring"][0].Order)
	require.Equal(t, 2, byPhase["Spring"][1].Order)
	require.Nil(t, byPhase["Spring"][1].Priority)
	require.NotNil(t, byPhase["Spring"][0].Priority)
	require.Equal(t, "must do", *byPhase["Spring"][0].Priority)
}

func TestFlattenLegacySkipsInvalidEntries(t *testing.T) {
	doc := &Document{
		PlantName: "Rose",
		PlanKind:  PlanLegacy,
		Legacy: map[string]any{
			"Spring": []any{
				map[string]any{"step": "Prune", "months": "Mar"},
				map[string]any{"months": "Apr"},
				"not an object",
			},
			"Summer": "not a list",
		},
	}
	rows, skipped := doc.FlattenInstructions()
	require.Len(t, rows, 1)
	require.Equal(t, 3, skipped)
}

func TestFlattenNoPlan(t *testing.T) {
	doc := &Document{PlantName: "Fern", PlanKind: PlanNone}
	rows, skipped := doc.FlattenInstructions()
	require.Empty(t, rows)
	require.Zero(t, skipped)
}
