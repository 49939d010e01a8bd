package criteria

import (
	"net/url"
	"testing"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullForm() url.Values {
	return url.Values{
		string(CookingMethodSelect): {"oven"},
		string(CuisineRegionSelect): {"Mediterranean Europe"},
		string(DietTypesSelect):     {"Vegetarian", "Gluten Free"},
		string(MealTypesSelect):     {"dinner"},
		string(IngredientsSelect):   {"tomato", "mozzarella"},
		string(ProteinSelect):       {"High Protein"},
		string(FatSelect):           {"Low Fat"},
		string(SugarSelect):         {"Low Sugar"},
		WeightCookingField:          {"1.5"},
		WeightCuisineField:          {"2"},
		WeightDietField:             {"0.3"},
		WeightIngredientsField:      {"3.0"},
		NumResultsField:             {"12"},
		FlexibleField:               {"on"},
	}
}

func TestState_Request(t *testing.T) {
	t.Run("should serialize a full form", func(t *testing.T) {
		s := NewState()
		s.Apply(fullForm())

		req := s.Request()
		assert.Equal(t, "oven", req.CookingMethod)
		assert.Equal(t, "Mediterranean Europe", req.CuisineRegion)
		assert.Equal(t, []string{"Vegetarian", "Gluten Free"}, req.DietTypes)
		assert.Equal(t, []string{"dinner"}, req.MealType)
		assert.Equal(t, []string{"tomato", "mozzarella"}, req.Ingredients)
		assert.Equal(t, []string{"High Protein", "Low Fat", "Low Sugar"}, req.HealthTypes)
		assert.Equal(t, types.Weights{CookingMethod: 1.5, CuisineRegion: 2, DietTypes: 0.3, Ingredients: 3}, req.Weights)
		assert.Equal(t, 12, req.TopK)
		assert.True(t, req.Flexible)
	})

	t.Run("should never produce nil slices", func(t *testing.T) {
		req := NewState().Request()
		assert.NotNil(t, req.DietTypes)
		assert.NotNil(t, req.MealType)
		assert.NotNil(t, req.HealthTypes)
		assert.NotNil(t, req.Ingredients)
		assert.Equal(t, "", req.CookingMethod)
		assert.Equal(t, DefaultTopK, req.TopK)
		assert.Equal(t, types.DefaultWeights(), req.Weights)
	})
}

func TestState_HealthTypesFollowBandOrder(t *testing.T) {
	labels := map[SelectID]string{
		ProteinSelect:     "High Protein",
		CarbSelect:        "Low Carb",
		FatSelect:         "Low Fat",
		CalorieSelect:     "Low Calorie",
		CholesterolSelect: "Low Cholesterol",
		SugarSelect:       "Low Sugar",
	}

	// every subset of the six bands
	for mask := 0; mask < 1<<len(NutritionBands); mask++ {
		s := NewState()
		var want []string
		// select in reverse to prove order comes from the bands, not the clicks
		for i := len(NutritionBands) - 1; i >= 0; i-- {
			if mask&(1<<i) != 0 {
				s.Select(NutritionBands[i], labels[NutritionBands[i]])
			}
		}
		for i, band := range NutritionBands {
			if mask&(1<<i) != 0 {
				want = append(want, labels[band])
			}
		}

		got := s.Request().HealthTypes
		if want == nil {
			assert.Empty(t, got, "mask %06b", mask)
			continue
		}
		assert.Equal(t, want, got, "mask %06b", mask)
	}
}

func TestState_Apply(t *testing.T) {
	t.Run("should treat missing fields as deselected and fall back to defaults", func(t *testing.T) {
		s := NewState()
		s.Apply(fullForm())
		s.Apply(url.Values{string(MealTypesSelect): {"lunch"}, NumResultsField: {"abc"}, WeightDietField: {"-2"}})

		assert.Empty(t, s.Selected(CookingMethodSelect))
		assert.Equal(t, []string{"lunch"}, s.Selected(MealTypesSelect))
		assert.Equal(t, DefaultTopK, s.TopK)
		assert.Equal(t, 0.0, s.Weights.DietTypes)
		assert.Equal(t, types.DefaultWeight, s.Weights.CookingMethod)
		assert.False(t, s.Flexible)
	})

	t.Run("should keep only the first value of single selects", func(t *testing.T) {
		s := NewState()
		s.Apply(url.Values{string(CookingMethodSelect): {"grill", "oven"}, string(DietTypesSelect): {"Vegan", "Vegan", "", "Keto"}})

		assert.Equal(t, []string{"grill"}, s.Selected(CookingMethodSelect))
		assert.Equal(t, []string{"Vegan", "Keto"}, s.Selected(DietTypesSelect))
	})

	t.Run("should dispatch a change per changed select", func(t *testing.T) {
		s := NewState()
		var changed []SelectID
		s.Subscribe(func(id SelectID) { changed = append(changed, id) })

		s.Apply(url.Values{string(IngredientsSelect): {"egg"}, string(SugarSelect): {"Low Sugar"}})
		assert.Equal(t, []SelectID{IngredientsSelect, SugarSelect}, changed)
		assert.True(t, s.SummaryVisible)

		changed = nil
		s.Apply(url.Values{string(IngredientsSelect): {"egg"}, string(SugarSelect): {"Low Sugar"}})
		assert.Empty(t, changed)
	})

	t.Run("should clamp the result count", func(t *testing.T) {
		assert.Equal(t, MinTopK, ParseTopK("0"))
		assert.Equal(t, MaxTopK, ParseTopK("500"))
		assert.Equal(t, 7, ParseTopK(" 7 "))
	})
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "1.0", FormatWeight(1))
	assert.Equal(t, "2.5", FormatWeight(2.46))
	assert.Equal(t, "0.0", FormatWeight(0))
}

func TestValidate(t *testing.T) {
	t.Run("should reject an empty request", func(t *testing.T) {
		err := Validate(NewState().Request())
		require.ErrorIs(t, err, ErrNoCriteria)
	})

	t.Run("should reject nil", func(t *testing.T) {
		assert.ErrorIs(t, Validate(nil), ErrNoCriteria)
	})

	single := map[string]*types.RecommendationRequest{
		"ingredients only":    {Ingredients: []string{"egg"}},
		"cooking method only": {CookingMethod: "oven"},
		"cuisine only":        {CuisineRegion: "East Asia"},
		"diet only":           {DietTypes: []string{"Vegan"}},
		"meal type only":      {MealType: []string{"lunch"}},
		"health type only":    {HealthTypes: []string{"Low Fat"}},
	}
	for name, req := range single {
		t.Run("should accept "+name, func(t *testing.T) {
			assert.NoError(t, Validate(req))
		})
	}

	t.Run("should ignore weights, result count and flexible flag", func(t *testing.T) {
		req := &types.RecommendationRequest{Weights: types.Weights{CookingMethod: 3}, TopK: 10, Flexible: true}
		assert.ErrorIs(t, Validate(req), ErrNoCriteria)
	})
}
