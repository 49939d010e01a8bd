package criteria

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

// Form field names of the non-select controls
const (
	WeightCookingField     = "weight-cooking"
	WeightCuisineField     = "weight-cuisine"
	WeightDietField        = "weight-diet"
	WeightIngredientsField = "weight-ingredients"
	NumResultsField        = "num-results"
	FlexibleField          = "flexible-matching"
)

// Request builds a fresh recommendation request from the current state.
// Nutrition bands are flattened into health_types in NutritionBands order.
func (s *State) Request() *types.RecommendationRequest {
	req := &types.RecommendationRequest{
		CookingMethod: first(s.Selections[CookingMethodSelect]),
		DietTypes:     s.Selected(DietTypesSelect),
		MealType:      s.Selected(MealTypesSelect),
		HealthTypes:   []string{},
		CuisineRegion: first(s.Selections[CuisineRegionSelect]),
		Ingredients:   s.Selected(IngredientsSelect),
		Weights:       s.Weights,
		TopK:          s.TopK,
		Flexible:      s.Flexible,
	}
	for _, band := range NutritionBands {
		req.HealthTypes = append(req.HealthTypes, s.Selections[band]...)
	}
	return req
}

// Apply reconciles a full form post into the state. Every tracked select is
// replaced by its posted values (a missing field means nothing selected) and a
// change notification is dispatched for each select that changed. Numeric
// controls that are missing or unparseable fall back to their defaults.
func (s *State) Apply(form url.Values) {
	for _, id := range TrackedSelects {
		s.Select(id, form[string(id)]...)
	}

	s.Weights = types.Weights{
		CookingMethod: ParseWeight(form.Get(WeightCookingField)),
		CuisineRegion: ParseWeight(form.Get(WeightCuisineField)),
		DietTypes:     ParseWeight(form.Get(WeightDietField)),
		Ingredients:   ParseWeight(form.Get(WeightIngredientsField)),
	}
	s.TopK = ParseTopK(form.Get(NumResultsField))
	s.Flexible = parseCheckbox(form.Get(FlexibleField))
}

// ParseWeight reads a weight slider value. Negative values clamp to zero;
// anything unparseable yields the default weight.
func ParseWeight(raw string) float64 {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return types.DefaultWeight
	}
	if w < 0 {
		return 0
	}
	return w
}

// ParseTopK reads the result-count slider, clamped to [MinTopK, MaxTopK]
func ParseTopK(raw string) int {
	k, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultTopK
	}
	if k < MinTopK {
		return MinTopK
	}
	if k > MaxTopK {
		return MaxTopK
	}
	return k
}

// FormatWeight renders a weight with one decimal, as shown next to its slider
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', 1, 64)
}

func parseCheckbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
