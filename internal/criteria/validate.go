package criteria

import (
	"errors"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

// ErrNoCriteria rejects a submission with nothing selected
var ErrNoCriteria = errors.New("Please fill in at least one search criterion")

// Validate passes when cooking method or cuisine region is set, or when any
// of diet types, meal types, health types or ingredients is non-empty.
func Validate(req *types.RecommendationRequest) error {
	if req == nil {
		return ErrNoCriteria
	}
	if req.CookingMethod != "" || req.CuisineRegion != "" {
		return nil
	}
	if len(req.DietTypes) > 0 || len(req.MealType) > 0 || len(req.HealthTypes) > 0 || len(req.Ingredients) > 0 {
		return nil
	}
	return ErrNoCriteria
}
