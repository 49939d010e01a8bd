package criteria

import (
	"testing"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Summary(t *testing.T) {
	t.Run("should be hidden when nothing is selected", func(t *testing.T) {
		sum := NewState().Summary()
		assert.False(t, sum.Visible)
		assert.Empty(t, sum.Groups)
	})

	t.Run("should list six groups with empty ones left without tags", func(t *testing.T) {
		s := NewState()
		s.Select(DietTypesSelect, "Vegan")
		s.Select(CarbSelect, "Low Carb")
		s.Select(ProteinSelect, "High Protein")

		sum := s.Summary()
		require.True(t, sum.Visible)
		require.Len(t, sum.Groups, 6)

		assert.Equal(t, CookingMethodGroup, sum.Groups[0].Group)
		assert.Empty(t, sum.Groups[0].Tags)

		assert.Equal(t, []Tag{{Group: DietTypesGroup, Select: DietTypesSelect, Value: "Vegan"}}, sum.Groups[2].Tags)

		nutrition := sum.Groups[5]
		assert.Equal(t, NutritionGroup, nutrition.Group)
		assert.Equal(t, []Tag{
			{Group: NutritionGroup, Select: ProteinSelect, Value: "High Protein"},
			{Group: NutritionGroup, Select: CarbSelect, Value: "Low Carb"},
		}, nutrition.Tags)
	})
}

func TestState_Remove(t *testing.T) {
	t.Run("should only touch the fat band when removing a fat tag", func(t *testing.T) {
		s := NewState()
		for _, band := range NutritionBands {
			def, ok := LookupSelect(band)
			require.True(t, ok)
			s.Select(band, def.Options[2].Value)
		}
		before := s.Request().HealthTypes

		var changed []SelectID
		s.Subscribe(func(id SelectID) { changed = append(changed, id) })

		ok := s.Remove(NutritionGroup, "", "Low Fat")
		require.True(t, ok)

		assert.Empty(t, s.Selected(FatSelect))
		for _, band := range NutritionBands {
			if band != FatSelect {
				assert.Len(t, s.Selected(band), 1, string(band))
			}
		}
		assert.Equal(t, []SelectID{FatSelect}, changed)
		assert.Len(t, s.Request().HealthTypes, len(before)-1)
	})

	t.Run("should use the band carried by the tag", func(t *testing.T) {
		s := NewState()
		s.Select(CarbSelect, "Protein Rich Carb")
		s.Select(ProteinSelect, "Protein Rich Carb")

		// by keyword this label belongs to the protein band
		ok := s.Remove(NutritionGroup, CarbSelect, "Protein Rich Carb")
		require.True(t, ok)
		assert.Empty(t, s.Selected(CarbSelect))
		assert.Equal(t, []string{"Protein Rich Carb"}, s.Selected(ProteinSelect))
	})

	t.Run("should remove only the matching value of a multi select", func(t *testing.T) {
		s := NewState()
		s.Select(IngredientsSelect, "egg", "flour", "milk")

		assert.True(t, s.Remove(IngredientsGroup, "", "flour"))
		assert.Equal(t, []string{"egg", "milk"}, s.Selected(IngredientsSelect))
	})

	t.Run("should hide the summary when the last tag goes", func(t *testing.T) {
		s := NewState()
		s.Select(CookingMethodSelect, "oven")
		assert.True(t, s.SummaryVisible)

		assert.True(t, s.Remove(CookingMethodGroup, "", "oven"))
		assert.False(t, s.SummaryVisible)
		assert.False(t, s.Summary().Visible)
	})

	t.Run("should not resolve saturated fat labels", func(t *testing.T) {
		s := NewState()
		s.Select(FatSelect, "Low Fat")
		assert.False(t, s.Remove(NutritionGroup, "", "Low Saturated Fat"))
		assert.Equal(t, []string{"Low Fat"}, s.Selected(FatSelect))
	})

	t.Run("should reject unknown groups", func(t *testing.T) {
		s := NewState()
		assert.False(t, s.Remove(Group("colour"), "", "red"))
	})
}

func TestNutritionSelectFor(t *testing.T) {
	tests := map[string]SelectID{
		"High Protein":      ProteinSelect,
		"Low Carb":          CarbSelect,
		"Medium Fat":        FatSelect,
		"Low Calorie":       CalorieSelect,
		"Low Cholesterol":   CholesterolSelect,
		"Low Sugar":         SugarSelect,
		"Protein Rich Carb": ProteinSelect,
	}
	for label, want := range tests {
		got, ok := NutritionSelectFor(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}

	_, ok := NutritionSelectFor("Saturated Fat Free")
	assert.False(t, ok)
}

func TestState_ClearAll(t *testing.T) {
	s := NewState()
	s.Apply(fullForm())
	s.SetResults([]types.RecipeID{3, 1, 2})
	require.True(t, s.SummaryVisible)
	require.True(t, s.ResultsVisible)

	var changed []SelectID
	s.Subscribe(func(id SelectID) { changed = append(changed, id) })

	s.ClearAll()

	for _, id := range TrackedSelects {
		assert.Empty(t, s.Selected(id), string(id))
	}
	assert.Equal(t, types.DefaultWeights(), s.Weights)
	assert.Equal(t, DefaultTopK, s.TopK)
	assert.False(t, s.Flexible)
	assert.False(t, s.SummaryVisible)
	assert.False(t, s.ResultsVisible)
	assert.Empty(t, s.Results)
	assert.Equal(t, TrackedSelects, changed)

	// clearing an already clear form gives the same result
	s.ClearAll()
	assert.False(t, s.SummaryVisible)
	assert.Equal(t, DefaultTopK, s.TopK)
}

func TestIngredientOptions(t *testing.T) {
	names := []string{"OLIVE OIL,extra virgin", "egg", "Eggplant"}

	opts := IngredientOptions(names, "")
	require.Len(t, opts, 3)
	assert.Equal(t, Option{Value: "OLIVE OIL,extra virgin", Label: "Olive oil, Extra virgin"}, opts[0])
	assert.Equal(t, "Egg", opts[1].Label)

	filtered := IngredientOptions(names, "EGG")
	require.Len(t, filtered, 2)
	assert.Equal(t, "egg", filtered[0].Value)
	assert.Equal(t, "Eggplant", filtered[1].Value)
}
