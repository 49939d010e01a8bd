package types

import (
	"encoding/json"
	"strings"
)

// Weights are the per-category ranking multipliers sent with a recommendation request
type Weights struct {
	CookingMethod float64 `json:"cooking_method"`
	CuisineRegion float64 `json:"cuisine_region"`
	DietTypes     float64 `json:"diet_types"`
	Ingredients   float64 `json:"ingredients"`
}

// DefaultWeight is the slider position every weight starts from
const DefaultWeight = 1.0

// DefaultWeights returns all four weights at DefaultWeight
func DefaultWeights() Weights {
	return Weights{
		CookingMethod: DefaultWeight,
		CuisineRegion: DefaultWeight,
		DietTypes:     DefaultWeight,
		Ingredients:   DefaultWeight,
	}
}

// RecommendationRequest is the body of POST /recommend
type RecommendationRequest struct {
	CookingMethod string   `json:"cooking_method"`
	DietTypes     []string `json:"diet_types"`
	MealType      []string `json:"meal_type"`
	HealthTypes   []string `json:"health_types"`
	CuisineRegion string   `json:"cuisine_region"`
	Ingredients   []string `json:"ingredients"`
	Weights       Weights  `json:"weights"`
	TopK          int      `json:"top_k"`
	Flexible      bool     `json:"flexible"`
}

// ErrorBody is the error payload of the recommendation backend. Detail is a
// string for handled errors and a list for request validation failures.
type ErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// Message returns the trimmed detail when it is a string, "" otherwise
func (b *ErrorBody) Message() string {
	var detail string
	if err := json.Unmarshal(b.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}
