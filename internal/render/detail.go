package render

import (
	"strconv"
	"strings"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

const (
	NotSpecified     = "Not specified"
	NotAvailable     = "N/A"
	NoIngredientsMsg = "No ingredients listed"
	NoInstructionMsg = "No instructions available"
)

// Fact is one nutrition tile
type Fact struct {
	Label string
	Value string
}

// Listing is one of the ingredient columns
type Listing struct {
	Title string
	Items []string
}

// DetailView is a RecipeDetail normalized for the modal
type DetailView struct {
	ID            types.RecipeID
	Title         string
	Description   string
	CookingMethod string
	CuisineRegion string
	MealTypes     []string
	DietTypes     []string
	HealthTypes   []string
	Nutrition     []Fact
	Extra         []Fact
	Listings      []Listing
	Instructions  []string
}

// NewDetailView applies the display fallbacks. Empty text fields become
// "Not specified" and missing or zero nutrients "N/A". Empty badge lists,
// listings and instructions are left empty for the template to replace.
func NewDetailView(d *types.RecipeDetail) DetailView {
	return DetailView{
		ID:            d.RecipeID,
		Title:         d.Title(),
		Description:   strings.TrimSpace(d.Description),
		CookingMethod: orNotSpecified(d.CookingMethod),
		CuisineRegion: orNotSpecified(d.CuisineRegion),
		MealTypes:     d.MealType.Split(","),
		DietTypes:     splitTrim(d.DietTypes, ","),
		HealthTypes:   splitTrim(d.HealthType, ","),
		Nutrition: []Fact{
			{"Calories", nutrient(d.Calories, "")},
			{"Protein", nutrient(d.ProteinContent, "g")},
			{"Carbs", nutrient(d.CarbohydrateContent, "g")},
			{"Fat", nutrient(d.FatContent, "g")},
			{"Cholesterol", nutrient(d.CholesterolContent, "mg")},
			{"Sugar", nutrient(d.SugarContent, "g")},
		},
		Extra: []Fact{
			{"Sodium", nutrient(d.SodiumContent, "mg")},
			{"Fiber", nutrient(d.FiberContent, "g")},
		},
		Listings: []Listing{
			{"Recipe Ingredients", d.RecipeIngredientParts.Split(",")},
			{"USDA Ingredients", d.BestUsdaIngredientName.Split(";")},
			{"Scraped Ingredients", d.ScrapedIngredients.Split(",")},
		},
		Instructions: splitTrim(d.RecipeInstructions, "\n"),
	}
}

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return NotSpecified
	}
	return s
}

// nutrient formats a value with its unit; nil and zero are N/A
func nutrient(v *float64, unit string) string {
	if v == nil || *v == 0 {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

func splitTrim(s, delim string) []string {
	return types.NewFlexibleString(s).Split(delim)
}
