package criteria

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SelectID names a tracked select element. The values double as form field names.
type SelectID string

const (
	CookingMethodSelect SelectID = "cooking-method"
	CuisineRegionSelect SelectID = "cuisine-region"
	DietTypesSelect     SelectID = "diet-types"
	MealTypesSelect     SelectID = "meal-types"
	IngredientsSelect   SelectID = "ingredients"
	ProteinSelect       SelectID = "protein-level"
	CarbSelect          SelectID = "carb-level"
	FatSelect           SelectID = "fat-level"
	CalorieSelect       SelectID = "calorie-level"
	CholesterolSelect   SelectID = "cholesterol-level"
	SugarSelect         SelectID = "sugar-level"
)

// NutritionBands lists the nutrition selects in the order their values are
// concatenated into health_types.
var NutritionBands = []SelectID{
	ProteinSelect,
	CarbSelect,
	FatSelect,
	CalorieSelect,
	CholesterolSelect,
	SugarSelect,
}

// TrackedSelects is every select the form owns, in clear-all order
var TrackedSelects = []SelectID{
	CookingMethodSelect,
	CuisineRegionSelect,
	DietTypesSelect,
	MealTypesSelect,
	IngredientsSelect,
	ProteinSelect,
	CarbSelect,
	FatSelect,
	CalorieSelect,
	CholesterolSelect,
	SugarSelect,
}

// IsNutritionBand reports whether id is one of the six nutrition selects
func IsNutritionBand(id SelectID) bool {
	for _, band := range NutritionBands {
		if band == id {
			return true
		}
	}
	return false
}

// Multiple reports whether the select accepts more than one value
func (id SelectID) Multiple() bool {
	switch id {
	case DietTypesSelect, MealTypesSelect, IngredientsSelect:
		return true
	default:
		return false
	}
}

// Option is one entry of a select
type Option struct {
	Value string
	Label string
}

// SelectDef describes how a select is rendered
type SelectDef struct {
	ID      SelectID
	Label   string
	Options []Option
}

func options(values ...string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}

// StaticSelects are the selects whose options ship with the frontend.
// Ingredient options come from the backend at runtime.
var StaticSelects = []SelectDef{
	{ID: CookingMethodSelect, Label: "Cooking Method", Options: options(
		"oven", "stovetop", "grill", "slow cooker", "pressure cooker", "fryer", "steamer", "no cook",
	)},
	{ID: CuisineRegionSelect, Label: "Cuisine Region", Options: options(
		"Mediterranean Europe", "Western Europe", "Eastern Europe", "North America", "Latin America",
		"Middle East", "South Asia", "East Asia", "Southeast Asia", "Africa",
	)},
	{ID: DietTypesSelect, Label: "Diet Types", Options: options(
		"Vegetarian", "Vegan", "Gluten Free", "Dairy Free", "Keto", "Paleo", "Pescatarian",
	)},
	{ID: MealTypesSelect, Label: "Meal Types", Options: options(
		"breakfast", "lunch", "dinner", "snack", "dessert", "appetizer",
	)},
	{ID: ProteinSelect, Label: "Protein", Options: options("High Protein", "Medium Protein", "Low Protein")},
	{ID: CarbSelect, Label: "Carbohydrates", Options: options("High Carb", "Medium Carb", "Low Carb")},
	{ID: FatSelect, Label: "Fat", Options: options("High Fat", "Medium Fat", "Low Fat")},
	{ID: CalorieSelect, Label: "Calories", Options: options("High Calorie", "Medium Calorie", "Low Calorie")},
	{ID: CholesterolSelect, Label: "Cholesterol", Options: options("High Cholesterol", "Medium Cholesterol", "Low Cholesterol")},
	{ID: SugarSelect, Label: "Sugar", Options: options("High Sugar", "Medium Sugar", "Low Sugar")},
}

// LookupSelect returns the static definition for id
func LookupSelect(id SelectID) (SelectDef, bool) {
	for _, def := range StaticSelects {
		if def.ID == id {
			return def, true
		}
	}
	return SelectDef{}, false
}

var lowerCaser = cases.Lower(language.English)

// IngredientLabel formats a raw ingredient name for display: lowercased,
// each comma-separated part trimmed with its first letter capitalized.
//
//	"OLIVE OIL,extra virgin" -> "Olive oil, Extra virgin"
func IngredientLabel(raw string) string {
	parts := strings.Split(lowerCaser.String(raw), ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if r, size := utf8.DecodeRuneInString(p); size > 0 {
			p = string(unicode.ToUpper(r)) + p[size:]
		}
		parts[i] = p
	}
	return strings.Join(parts, ", ")
}

// IngredientOptions turns backend ingredient names into options, keeping the
// backend's frequency order. A non-empty filter keeps only options whose label
// contains it, case-insensitively.
func IngredientOptions(names []string, filter string) []Option {
	filter = lowerCaser.String(strings.TrimSpace(filter))
	out := make([]Option, 0, len(names))
	for _, name := range names {
		label := IngredientLabel(name)
		if filter != "" && !strings.Contains(lowerCaser.String(label), filter) {
			continue
		}
		out = append(out, Option{Value: name, Label: label})
	}
	return out
}
