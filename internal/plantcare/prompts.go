package plantcare

import "fmt"

/* =================================================================================
						PROMPT TEMPLATES
	One template per prompt group, plus the classification prompt. Each
	template asks for raw JSON (no markdown) following an exact schema.
=================================================================================*/

const classificationPromptTemplate = `
Classify the plant "%s" to determine the most appropriate care instruction format.

Respond with ONLY a JSON object in this exact format:

{
  "is_plant": true or false,
  "plant_group": "Vegetables" OR "Herbs" OR "Fruit Trees" OR "Flowering Shrubs" OR "Perennial Flowers" OR "Annual Flowers" OR "Ornamental Trees" OR "Houseplants" OR "Succulents" OR "Bulbs" OR "Native Plants" OR null
}

Rules:
- Set "is_plant" to false and "plant_group" to null when the input does not name a real plant, tree, or shrub.
- When "is_plant" is true, "plant_group" MUST be exactly one of the listed categories.

Classification Guidelines:
- Vegetables: Annual edible plants grown for food (tomatoes, lettuce, peppers, carrots, etc.)
- Herbs: Annual and perennial plants grown for culinary or medicinal use (basil, rosemary, mint, etc.)
- Fruit Trees: Long-term fruit-producing trees and shrubs (apple, citrus, berry bushes, etc.)
- Flowering Shrubs: Perennial woody ornamental plants (roses, hydrangeas, azaleas, etc.)
- Perennial Flowers: Long-term flowering plants (hostas, daylilies, peonies, etc.)
- Annual Flowers: Single-season flowering plants (marigolds, petunias, impatiens, etc.)
- Ornamental Trees: Non-fruit bearing trees for landscaping (maples, oaks, dogwoods, etc.)
- Houseplants: Plants typically grown indoors (fiddle leaf fig, pothos, etc.)
- Succulents: Water-storing plants including cacti (echeveria, jade plants, aloe, etc.)
- Bulbs: Underground storage organs with seasonal cycles (tulips, daffodils, gladiolus, etc.)
- Native Plants: Plants indigenous to specific regions (varies by location)

Plant: %s
Response:`

// BuildClassificationPrompt formats the classification prompt for a plant name.
func BuildClassificationPrompt(plantName string) string {
	return fmt.Sprintf(classificationPromptTemplate, plantName, plantName)
}

const houseplantsPromptTemplate = `
Act as a Master Gardener providing comprehensive indoor houseplant care guidance.

Plant Name: %s

Generate a JSON response following this EXACT schema (respond with ONLY raw JSON, no markdown):

{
  "plantName": "[Corrected Common Name]",
  "description": "[Brief description of the houseplant and its characteristics]",
  "type": "Houseplant",
  "seasonality": null,
  "zoneSuitability": null,
  "seedStartingMonth": null,
  "plantingMonth": null,
  "requirements": {
    "sun": "[Bright indirect OR Medium light OR Low light]",
    "water": "[Allow top inch to dry OR Keep evenly moist OR Dry between waterings]",
    "soil": "[Well-draining potting mix OR Aroid mix OR Cactus mix]",
    "humidity": "[Average home humidity OK OR Needs higher humidity]",
    "temperature": "[Typical indoor range OR Avoid below 55F]"
  },
  "seed_starting": [],
  "planting": [
    { "step": "[Repotting or initial potting guidance]", "tip": "[Container size, drainage, acclimation tips]" }
  ],
  "care_plan": {
    "style": "indoor",
    "tabs": [
      {
        "key": "year_round",
        "label": "Year-Round",
        "items": [
          { "text": "[Water based on medium dryness; adjust by season]", "when": "[Check weekly; less in winter]", "priority": "must do" },
          { "text": "[Fertilize during active growth]", "when": "[Monthly in spring/summer]", "priority": "good to do" }
        ]
      },
      {
        "key": "winter",
        "label": "Winter",
        "items": [
          { "text": "[Reduce watering; increase light exposure if possible]", "when": "[Nov-Feb]", "priority": "good to do" }
        ]
      }
    ]
  }
}

CRUCIAL INSTRUCTIONS:
1. Keep "requirements" values extremely concise (1-3 words or compact ranges). No sentences.
2. Do not include the word "Zone" anywhere. Tailor advice to typical indoor conditions.
3. Use indoor tabs (Year-Round, Winter). Keep 1-3 concise items per tab (max 8 total).
4. Each item has only: text, when (month/range or relative phrase), priority (must do|good to do|optional).`

const succulentsPromptTemplate = `
Act as a Zone-Aware Master Gardener providing care guidance for succulents and cacti.

Plant Name: %s
User USDA Hardiness Zone: %s
Plant Group: %s

Generate a JSON response following this EXACT schema (respond with ONLY raw JSON, no markdown):

{
  "plantName": "[Corrected Common Name]",
  "description": "[Brief description of the succulent and its characteristics]",
  "type": "Succulent",
  "seasonality": null,
  "zoneSuitability": "[match OR close OR far, for outdoor growing in the given zone]",
  "seedStartingMonth": null,
  "plantingMonth": null,
  "requirements": {
    "sun": "[Full sun OR Bright indirect]",
    "water": "[Soak and dry OR Minimal in winter]",
    "soil": "[Gritty cactus mix OR Sandy, fast-draining]",
    "temperature": "[Protect below 40F OR Hardy to zone X]"
  },
  "seed_starting": [],
  "planting": [
    { "step": "[Potting or siting guidance]", "tip": "[Drainage and container advice]" }
  ],
  "care_plan": {
    "style": "indoor",
    "tabs": [
      {
        "key": "growing_season",
        "label": "Spring-Summer",
        "items": [
          { "text": "[Water thoroughly when soil is fully dry]", "when": "[Every 1-2 weeks]", "priority": "must do" }
        ]
      },
      {
        "key": "dormancy",
        "label": "Fall-Winter",
        "items": [
          { "text": "[Cut watering back sharply; keep cool and bright]", "when": "[Nov-Feb]", "priority": "must do" }
        ]
      }
    ]
  }
}

CRUCIAL INSTRUCTIONS:
1. Keep "requirements" values extremely concise (1-3 words or compact ranges). No sentences.
2. Keep 1-3 concise items per tab (max 8 total).
3. Each item has only: text, when, priority (must do|good to do|optional).`

const edibleAnnualsPromptTemplate = `
Act as a Zone-Aware Master Gardener providing comprehensive growing guidance for edible plants.

Plant Name: %s
User USDA Hardiness Zone: %s
Plant Group: %s

Generate a JSON response following this EXACT schema (respond with ONLY raw JSON, no markdown):

{
  "plantName": "[Corrected Common Name]",
  "description": "[Brief description of the edible plant, its uses, and expected yields]",
  "type": "Annual",
  "seasonality": "[Cool Season OR Warm Season]",
  "zoneSuitability": "[match OR close OR far]",
  "seedStartingMonth": "[Month appropriate for the zone, or null]",
  "plantingMonth": "[Month appropriate for the zone, or null]",
  "requirements": {
    "sun": "[Full Sun OR Partial Shade]",
    "water": "[Deep weekly OR Consistent moisture OR Moderate]",
    "soil": "[Well-draining, fertile OR Sandy loam OR Rich, organic]",
    "spacing": "[e.g., 12-18 inches apart]"
  },
  "seed_starting": [
    { "step": "[Specific seed starting action]", "tip": "[Helpful hint or technique]" }
  ],
  "planting": [
    { "step": "[Specific planting action]", "tip": "[Helpful hint or technique]" }
  ],
  "care_plan": {
    "style": "seasons",
    "tabs": [
      {
        "key": "spring",
        "label": "Spring",
        "items": [
          { "text": "[Seed starting or transplanting task for this zone]", "when": "[Month range for the zone]", "priority": "must do" }
        ]
      },
      {
        "key": "summer",
        "label": "Summer",
        "items": [
          { "text": "[Watering, feeding, and harvest tasks]", "when": "[Month range]", "priority": "must do" }
        ]
      },
      {
        "key": "fall",
        "label": "Fall",
        "items": [
          { "text": "[Final harvest and cleanup tasks]", "when": "[Month range]", "priority": "good to do" }
        ]
      }
    ]
  }
}

CRUCIAL INSTRUCTIONS:
1. Keep "requirements" values extremely concise (1-3 words or compact ranges). No sentences.
2. Tailor all months and timings to the given USDA zone.
3. Keep 1-3 concise items per tab (max 8 total).
4. Each item has only: text, when, priority (must do|good to do|optional).`

const fruitTreesPromptTemplate = `
Act as a Zone-Aware Master Gardener providing comprehensive guidance for fruit trees and berry bushes.

Plant Name: %s
User USDA Hardiness Zone: %s
Plant Group: %s

Generate a JSON response following this EXACT schema (respond with ONLY raw JSON, no markdown):

{
  "plantName": "[Corrected Common Name]",
  "description": "[Brief description including expected years to fruit]",
  "type": "Perennial",
  "seasonality": null,
  "zoneSuitability": "[match OR close OR far]",
  "seedStartingMonth": null,
  "plantingMonth": "[Best planting month for the zone]",
  "requirements": {
    "sun": "[Full Sun OR Partial Shade]",
    "water": "[Deep weekly OR Establishment schedule]",
    "soil": "[Well-draining loam OR Slightly acidic]",
    "pollination": "[Self-fertile OR Needs a partner variety]"
  },
  "seed_starting": [],
  "planting": [
    { "step": "[Site selection and planting action]", "tip": "[Spacing, rootstock, or staking advice]" }
  ],
  "care_plan": {
    "style": "lifecycle",
    "tabs": [
      {
        "key": "establish",
        "label": "Establish",
        "items": [
          { "text": "[First-year watering and mulching]", "when": "[Year 1]", "priority": "must do" }
        ]
      },
      {
        "key": "grow",
        "label": "Grow",
        "items": [
          { "text": "[Pruning and feeding schedule]", "when": "[Late winter; spring]", "priority": "must do" }
        ]
      },
      {
        "key": "harvest",
        "label": "Harvest",
        "items": [
          { "text": "[Ripeness cues and harvest handling]", "when": "[Expected month range for the zone]", "priority": "must do" }
        ]
      }
    ]
  }
}

CRUCIAL INSTRUCTIONS:
1. Keep "requirements" values extremely concise (1-3 words or compact ranges). No sentences.
2. Tailor all months and timings to the given USDA zone.
3. Keep 1-3 concise items per tab (max 8 total).
4. Each item has only: text, when, priority (must do|good to do|optional).`

const ornamentalPerennialsPromptTemplate = `
Act as a Zone-Aware Master Gardener providing guidance for ornamental perennials, shrubs, and trees.

Plant Name: %s
User USDA Hardiness Zone: %s
Plant Group: %s

Generate a JSON response following this EXACT schema (respond with ONLY raw JSON, no markdown):

{
  "plantName": "[Corrected Common Name]",
  "description": "[Brief description of the plant and its ornamental value]",
  "type": "Perennial",
  "seasonality": null,
  "zoneSuitability": "[match OR close OR far]",
  "seedStartingMonth": null,
  "plantingMonth": "[Best planting month for the zone]",
  "requirements": {
    "sun": "[Full Sun OR Partial Shade OR Full Shade]",
    "water": "[Deep weekly OR Drought tolerant once established]",
    "soil": "[Well-draining OR Moist, rich OR Adaptable]",
    "spacing": "[Mature spread guidance]"
  },
  "seed_starting": [],
  "planting": [
    { "step": "[Planting action]", "tip": "[Soil prep or placement advice]" }
  ],
  "care_plan": {
    "style": "seasons",
    "tabs": [
      {
        "key": "spring",
        "label": "Spring",
        "items": [
          { "text": "[Cleanup, feeding, and dividing tasks]", "when": "[Month range for the zone]", "priority": "must do" }
        ]
      },
      {
        "key": "summer",
        "label": "Summer",
        "items": [
          { "text": "[Watering and deadheading tasks]", "when": "[Month range]", "priority": "good to do" }
        ]
      },
      {
        "key": "fall",
        "label": "Fall",
        "items": [
          { "text": "[Mulching and winter prep tasks]", "when": "[Month range]", "priority": "must do" }
        ]
      }
    ]
  }
}

CRUCIAL INSTRUCTIONS:
1. Keep "requirements" values extremely concise (1-3 words or compact ranges). No sentences.
2. Tailor all months and timings to the given USDA zone.
3. Keep 1-3 concise items per tab (max 8 total).
4. Each item has only: text, when, priority (must do|good to do|optional).`

const annualFlowersPromptTemplate = `
Act as a Zone-Aware Master Gardener providing guidance for annual flowers.

Plant Name: %s
User USDA Hardiness Zone: %s
Plant Group: %s

Generate a JSON response following this EXACT schema (respond with ONLY raw JSON, no markdown):

{
  "plantName": "[Corrected Common Name]",
  "description": "[Brief description of the flower and its display]",
  "type": "Annual",
  "seasonality": "[Cool Season OR Warm Season]",
  "zoneSuitability": "[match OR close OR far]",
  "seedStartingMonth": "[Month appropriate for the zone, or null]",
  "plantingMonth": "[Month appropriate for the zone, or null]",
  "requirements": {
    "sun": "[Full Sun OR Partial Shade]",
    "water": "[Consistent moisture OR Moderate]",
    "soil": "[Well-draining, fertile OR Average garden soil]",
    "spacing": "[e.g., 8-12 inches apart]"
  },
  "seed_starting": [
    { "step": "[Seed starting action]", "tip": "[Indoor timing relative to last frost]" }
  ],
  "planting": [
    { "step": "[Transplanting or direct-sow action]", "tip": "[Hardening off advice]" }
  ],
  "care_plan": {
    "style": "seasons",
    "tabs": [
      {
        "key": "spring",
        "label": "Spring",
        "items": [
          { "text": "[Sowing and transplanting tasks for this zone]", "when": "[Month range]", "priority": "must do" }
        ]
      },
      {
        "key": "summer",
        "label": "Summer",
        "items": [
          { "text": "[Deadheading and feeding for continuous bloom]", "when": "[Month range]", "priority": "good to do" }
        ]
      }
    ]
  }
}

CRUCIAL INSTRUCTIONS:
1. Keep "requirements" values extremely concise (1-3 words or compact ranges). No sentences.
2. Tailor all months and timings to the given USDA zone.
3. Keep 1-3 concise items per tab (max 8 total).
4. Each item has only: text, when, priority (must do|good to do|optional).`

const bulbsPromptTemplate = `
Act as a Zone-Aware Master Gardener providing guidance for bulbs, corms, and tubers.

Plant Name: %s
User USDA Hardiness Zone: %s
Plant Group: %s

Generate a JSON response following this EXACT schema (respond with ONLY raw JSON, no markdown):

{
  "plantName": "[Corrected Common Name]",
  "description": "[Brief description including bloom season]",
  "type": "Perennial",
  "seasonality": "[Spring blooming OR Summer blooming OR Fall blooming]",
  "zoneSuitability": "[match OR close OR far]",
  "seedStartingMonth": null,
  "plantingMonth": "[Best bulb planting month for the zone]",
  "requirements": {
    "sun": "[Full Sun OR Partial Shade]",
    "water": "[Moderate while growing OR Dry dormancy]",
    "soil": "[Well-draining OR Sandy]",
    "depth": "[Planting depth guidance]"
  },
  "seed_starting": [],
  "planting": [
    { "step": "[Bulb planting action]", "tip": "[Depth, spacing, and orientation advice]" }
  ],
  "care_plan": {
    "style": "seasons",
    "tabs": [
      {
        "key": "planting",
        "label": "Planting",
        "items": [
          { "text": "[Plant bulbs at the right time for the zone]", "when": "[Month range]", "priority": "must do" }
        ]
      },
      {
        "key": "bloom",
        "label": "Bloom",
        "items": [
          { "text": "[Feeding and deadheading during bloom]", "when": "[Month range]", "priority": "good to do" }
        ]
      },
      {
        "key": "dormancy",
        "label": "Dormancy",
        "items": [
          { "text": "[Let foliage die back; lifting advice if not hardy in the zone]", "when": "[Month range]", "priority": "must do" }
        ]
      }
    ]
  }
}

CRUCIAL INSTRUCTIONS:
1. Keep "requirements" values extremely concise (1-3 words or compact ranges). No sentences.
2. Tailor all months and timings to the given USDA zone.
3. Keep 1-3 concise items per tab (max 8 total).
4. Each item has only: text, when, priority (must do|good to do|optional).`

// BuildCarePrompt formats the group-specific care prompt. Houseplants omit
// the zone entirely; indoor care is zone-independent.
func BuildCarePrompt(promptGroup PromptGroup, plantName, userZone string, group Group) (string, error) {
	switch promptGroup {
	case PromptHouseplants:
		return fmt.Sprintf(houseplantsPromptTemplate, plantName), nil
	case PromptSucculents:
		return fmt.Sprintf(succulentsPromptTemplate, plantName, userZone, group), nil
	case PromptEdibleAnnuals:
		return fmt.Sprintf(edibleAnnualsPromptTemplate, plantName, userZone, group), nil
	case PromptFruitTrees:
		return fmt.Sprintf(fruitTreesPromptTemplate, plantName, userZone, group), nil
	case PromptOrnamentalPerennials:
		return fmt.Sprintf(ornamentalPerennialsPromptTemplate, plantName, userZone, group), nil
	case PromptAnnualFlowers:
		return fmt.Sprintf(annualFlowersPromptTemplate, plantName, userZone, group), nil
	case PromptBulbs:
		return fmt.Sprintf(bulbsPromptTemplate, plantName, userZone, group), nil
	default:
		return "", fmt.Errorf("unknown prompt group: %s", promptGroup)
	}
}
