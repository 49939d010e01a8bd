package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RecipeID identifies a recipe in the recommendation backend
type RecipeID int64

// UnmarshalJSON accepts both a JSON number and a numeric string
func (id *RecipeID) UnmarshalJSON(data []byte) error {
	// Try to unmarshal as number first
	var num int64
	if err := json.Unmarshal(data, &num); err == nil {
		*id = RecipeID(num)
		return nil
	}

	// Try to unmarshal as string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		n, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid recipe id %q", str)
		}
		*id = RecipeID(n)
		return nil
	}

	return fmt.Errorf("invalid recipe id format")
}

// String returns the decimal form used in URLs and labels
func (id RecipeID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseRecipeID parses a path parameter into a RecipeID
func ParseRecipeID(s string) (RecipeID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid recipe id %q", s)
	}
	return RecipeID(n), nil
}

// FlexibleList holds a field the backend sends either as a JSON array of
// strings or as a single delimiter-joined string.
type FlexibleList struct {
	Items  []string
	Raw    string
	IsList bool
}

// NewFlexibleString wraps a delimiter-joined string
func NewFlexibleString(s string) FlexibleList {
	return FlexibleList{Raw: s}
}

// NewFlexibleItems wraps an already split list
func NewFlexibleItems(items ...string) FlexibleList {
	return FlexibleList{Items: items, IsList: true}
}

func (l *FlexibleList) UnmarshalJSON(data []byte) error {
	*l = FlexibleList{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		l.Items = items
		l.IsList = true
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		l.Raw = str
		return nil
	}

	return fmt.Errorf("invalid list format")
}

func (l FlexibleList) MarshalJSON() ([]byte, error) {
	if l.IsList {
		return json.Marshal(l.Items)
	}
	if l.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(l.Raw)
}

// Split returns the trimmed, non-empty entries. Strings are split on delim,
// arrays are taken as they are.
func (l FlexibleList) Split(delim string) []string {
	parts := l.Items
	if !l.IsList {
		if l.Raw == "" {
			return nil
		}
		parts = strings.Split(l.Raw, delim)
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Empty reports whether the field was absent or blank
func (l FlexibleList) Empty() bool {
	for _, item := range l.Items {
		if strings.TrimSpace(item) != "" {
			return false
		}
	}
	return strings.TrimSpace(l.Raw) == ""
}

// RecipeDetail is the record returned by GET /recipe/{id}. Every field is optional.
type RecipeDetail struct {
	RecipeID               RecipeID     `json:"RecipeId"`
	Name                   string       `json:"Name,omitempty"`
	Description            string       `json:"Description,omitempty"`
	MealType               FlexibleList `json:"meal_type"`
	DietTypes              string       `json:"Diet_Types,omitempty"`
	HealthType             string       `json:"health_type,omitempty"`
	CuisineRegion          string       `json:"CuisineRegion,omitempty"`
	CookingMethod          string       `json:"Cooking_Method,omitempty"`
	RecipeIngredientParts  FlexibleList `json:"RecipeIngredientParts"`
	BestUsdaIngredientName FlexibleList `json:"BestUsdaIngredientName"`
	ScrapedIngredients     FlexibleList `json:"ScrapedIngredients"`
	RecipeInstructions     string       `json:"RecipeInstructions,omitempty"`
	Calories               *float64     `json:"Calories,omitempty"`
	ProteinContent         *float64     `json:"ProteinContent,omitempty"`
	CarbohydrateContent    *float64     `json:"CarbohydrateContent,omitempty"`
	FatContent             *float64     `json:"FatContent,omitempty"`
	CholesterolContent     *float64     `json:"CholesterolContent,omitempty"`
	SugarContent           *float64     `json:"SugarContent,omitempty"`
	SodiumContent          *float64     `json:"SodiumContent,omitempty"`
	FiberContent           *float64     `json:"FiberContent,omitempty"`
}

// UnmarshalJSON folds the legacy Healthy_Type field into HealthType.
// Backends built before the field rename still send Healthy_Type; when both
// are present health_type wins. Remove once those backends are retired.
func (d *RecipeDetail) UnmarshalJSON(data []byte) error {
	type alias RecipeDetail
	aux := struct {
		*alias
		LegacyHealthyType *string `json:"Healthy_Type"`
	}{alias: (*alias)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if d.HealthType == "" && aux.LegacyHealthyType != nil {
		d.HealthType = *aux.LegacyHealthyType
	}
	return nil
}

// Title is the recipe name, or "Recipe #<id>" when the backend has none
func (d *RecipeDetail) Title() string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	return "Recipe #" + d.RecipeID.String()
}
