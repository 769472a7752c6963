package plantcare

import "fmt"

// Group is one of the 11 fine-grained care categories the classifier can
// assign to a plant.
type Group string

const (
	GroupVegetables       Group = "Vegetables"
	GroupHerbs            Group = "Herbs"
	GroupFruitTrees       Group = "Fruit Trees"
	GroupFloweringShrubs  Group = "Flowering Shrubs"
	GroupPerennialFlowers Group = "Perennial Flowers"
	GroupAnnualFlowers    Group = "Annual Flowers"
	GroupOrnamentalTrees  Group = "Ornamental Trees"
	GroupHouseplants      Group = "Houseplants"
	GroupSucculents       Group = "Succulents"
	GroupBulbs            Group = "Bulbs"
	GroupNativePlants     Group = "Native Plants"
)

// AllGroups lists every valid classification category.
var AllGroups = []Group{
	GroupVegetables,
	GroupHerbs,
	GroupFruitTrees,
	GroupFloweringShrubs,
	GroupPerennialFlowers,
	GroupAnnualFlowers,
	GroupOrnamentalTrees,
	GroupHouseplants,
	GroupSucculents,
	GroupBulbs,
	GroupNativePlants,
}

// Valid reports whether g is one of the 11 known categories.
func (g Group) Valid() bool {
	for _, v := range AllGroups {
		if g == v {
			return true
		}
	}
	return false
}

// Indoor reports whether plants in this group are keyed on name+category
// with a null zone (indoor care is zone-independent).
func (g Group) Indoor() bool {
	return g == GroupHouseplants || g == GroupSucculents
}

// PromptGroup is one of the 7 coarse prompt groups a category routes to.
type PromptGroup string

const (
	PromptEdibleAnnuals        PromptGroup = "edible_annuals"
	PromptFruitTrees           PromptGroup = "fruit_trees"
	PromptOrnamentalPerennials PromptGroup = "ornamental_perennials"
	PromptAnnualFlowers        PromptGroup = "annual_flowers"
	PromptHouseplants          PromptGroup = "houseplants"
	PromptSucculents           PromptGroup = "succulents"
	PromptBulbs                PromptGroup = "bulbs"
)

// groupPrompts maps detailed care categories to prompt groups. Native
// plants use the ornamental perennial structure.
var groupPrompts = map[Group]PromptGroup{
	GroupVegetables:       PromptEdibleAnnuals,
	GroupHerbs:            PromptEdibleAnnuals,
	GroupFruitTrees:       PromptFruitTrees,
	GroupFloweringShrubs:  PromptOrnamentalPerennials,
	GroupPerennialFlowers: PromptOrnamentalPerennials,
	GroupOrnamentalTrees:  PromptOrnamentalPerennials,
	GroupAnnualFlowers:    PromptAnnualFlowers,
	GroupHouseplants:      PromptHouseplants,
	GroupSucculents:       PromptSucculents,
	GroupBulbs:            PromptBulbs,
	GroupNativePlants:     PromptOrnamentalPerennials,
}

// humanFriendly names each prompt group for log context.
var humanFriendly = map[PromptGroup]string{
	PromptHouseplants:          "houseplant",
	PromptEdibleAnnuals:        "edible annual",
	PromptFruitTrees:           "fruit tree",
	PromptOrnamentalPerennials: "ornamental perennial",
	PromptAnnualFlowers:        "annual flower",
	PromptBulbs:                "bulb",
	PromptSucculents:           "succulent",
}

// Route maps a care category to its prompt group. The table is total over
// the category enum; an unmapped input should be unreachable given the
// closed enum from classification and is reported as an error.
func Route(g Group) (PromptGroup, error) {
	pg, ok := groupPrompts[g]
	if !ok {
		return "", fmt.Errorf("no prompt group mapped for plant group %q", g)
	}
	return pg, nil
}
