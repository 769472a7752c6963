package plantcare

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouteCoversEveryGroup(t *testing.T) {
	for _, g := range AllGroups {
		pg, err := Route(g)
		require.NoError(t, err, "group %q must route", g)
		require.NotEmpty(t, pg)
	}
}

func TestRouteMapping(t *testing.T) {
	cases := map[Group]PromptGroup{
		GroupVegetables:       PromptEdibleAnnuals,
		GroupHerbs:            PromptEdibleAnnuals,
		GroupFruitTrees:       PromptFruitTrees,
		GroupFloweringShrubs:  PromptOrnamentalPerennials,
		GroupPerennialFlowers: PromptOrnamentalPerennials,
		GroupOrnamentalTrees:  PromptOrnamentalPerennials,
		GroupNativePlants:     PromptOrnamentalPerennials,
		GroupAnnualFlowers:    PromptAnnualFlowers,
		GroupHouseplants:      PromptHouseplants,
		GroupSucculents:       PromptSucculents,
		GroupBulbs:            PromptBulbs,
	}
	for g, want := range cases {
		got, err := Route(g)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestRouteUnknownGroup(t *testing.T) {
	_, err := Route(Group("Cacti"))
	require.Error(t, err)
}

func TestIndoorGroups(t *testing.T) {
	require.True(t, GroupHouseplants.Indoor())
	require.True(t, GroupSucculents.Indoor())
	for _, g := range AllGroups {
		if g == GroupHouseplants || g == GroupSucculents {
			continue
		}
		require.False(t, g.Indoor(), "group %q must not be indoor", g)
	}
}

func TestGroupValid(t *testing.T) {
	require.True(t, GroupBulbs.Valid())
	require.False(t, Group("Shrubbery").Valid())
	require.False(t, Group("").Valid())
}

func TestBuildCarePromptIncludesNameAndZone(t *testing.T) {
	prompt, err := BuildCarePrompt(PromptFruitTrees, "Meyer Lemon", "9b", GroupFruitTrees)
	require.NoError(t, err)
	require.Contains(t, prompt, "Meyer Lemon")
	require.Contains(t, prompt, "9b")
}

func TestBuildCarePromptHouseplantsOmitsZone(t *testing.T) {
	prompt, err := BuildCarePrompt(PromptHouseplants, "Monstera", "7a", GroupHouseplants)
	require.NoError(t, err)
	require.Contains(t, prompt, "Monstera")
	require.NotContains(t, prompt, "7a")
}
