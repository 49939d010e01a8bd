package criteria

import (
	"strings"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

// Group is a tag group of the criteria summary panel
type Group string

const (
	CookingMethodGroup Group = "cooking-method"
	CuisineRegionGroup Group = "cuisine-region"
	DietTypesGroup     Group = "diet-types"
	MealTypesGroup     Group = "meal-types"
	IngredientsGroup   Group = "ingredients"
	NutritionGroup     Group = "nutrition"
)

// groupSelects maps each single-source group to the select that owns it.
// NutritionGroup is fed by all NutritionBands and resolved per tag.
var groupSelects = map[Group]SelectID{
	CookingMethodGroup: CookingMethodSelect,
	CuisineRegionGroup: CuisineRegionSelect,
	DietTypesGroup:     DietTypesSelect,
	MealTypesGroup:     MealTypesSelect,
	IngredientsGroup:   IngredientsSelect,
}

var groupOrder = []struct {
	group Group
	title string
}{
	{CookingMethodGroup, "Cooking Method"},
	{CuisineRegionGroup, "Cuisine Region"},
	{DietTypesGroup, "Diet Types"},
	{MealTypesGroup, "Meal Types"},
	{IngredientsGroup, "Ingredients"},
	{NutritionGroup, "Nutrition"},
}

// Tag is one removable chip. Select is the select the value came from.
type Tag struct {
	Group  Group
	Select SelectID
	Value  string
}

// TagGroup is one titled row of the summary
type TagGroup struct {
	Group Group
	Title string
	Tags  []Tag
}

// Summary is the read-only reflection of the current selection
type Summary struct {
	Visible bool
	Groups  []TagGroup
}

// Summary recomputes the tag panel. It is hidden when nothing is selected.
func (s *State) Summary() Summary {
	if !s.HasCriteria() {
		return Summary{}
	}

	out := Summary{Visible: true, Groups: make([]TagGroup, 0, len(groupOrder))}
	for _, g := range groupOrder {
		tg := TagGroup{Group: g.group, Title: g.title}
		if g.group == NutritionGroup {
			for _, band := range NutritionBands {
				for _, v := range s.Selections[band] {
					tg.Tags = append(tg.Tags, Tag{Group: g.group, Select: band, Value: v})
				}
			}
		} else {
			id := groupSelects[g.group]
			for _, v := range s.Selections[id] {
				tg.Tags = append(tg.Tags, Tag{Group: g.group, Select: id, Value: v})
			}
		}
		out.Groups = append(out.Groups, tg)
	}
	return out
}

// ResolveSelect finds the select that owns a tag. For nutrition tags the band
// select carried by the tag is used; tags without one fall back to
// NutritionSelectFor on the label.
func ResolveSelect(group Group, band SelectID, value string) (SelectID, bool) {
	if group != NutritionGroup {
		id, ok := groupSelects[group]
		return id, ok
	}
	if IsNutritionBand(band) {
		return band, true
	}
	return NutritionSelectFor(value)
}

// NutritionSelectFor maps a nutrition label to its band select by keyword.
// "Saturated Fat" labels have no band select and are not resolved.
func NutritionSelectFor(label string) (SelectID, bool) {
	switch {
	case strings.Contains(label, "Protein"):
		return ProteinSelect, true
	case strings.Contains(label, "Carb"):
		return CarbSelect, true
	case strings.Contains(label, "Fat") && !strings.Contains(label, "Saturated"):
		return FatSelect, true
	case strings.Contains(label, "Calorie"):
		return CalorieSelect, true
	case strings.Contains(label, "Cholesterol"):
		return CholesterolSelect, true
	case strings.Contains(label, "Sugar"):
		return SugarSelect, true
	default:
		return "", false
	}
}

// Remove deselects value from the select owning the tag and re-dispatches
// that select's change notification. It reports whether a select was found.
func (s *State) Remove(group Group, band SelectID, value string) bool {
	id, ok := ResolveSelect(group, band, value)
	if !ok {
		return false
	}

	current := s.Selections[id]
	next := make([]string, 0, len(current))
	removed := false
	for _, v := range current {
		if !removed && v == value {
			removed = true
			continue
		}
		next = append(next, v)
	}
	s.setSelection(id, next)
	s.dispatch(id)
	return true
}

// ClearAll resets the whole form: every select deselected, weights back to
// the default, result count to DefaultTopK, flexible matching off, summary and
// results hidden. Each select's change notification is dispatched.
func (s *State) ClearAll() {
	for _, id := range TrackedSelects {
		s.setSelection(id, nil)
		s.dispatch(id)
	}

	s.Weights = types.DefaultWeights()
	s.TopK = DefaultTopK
	s.Flexible = false
	s.SummaryVisible = false
	s.ResultsVisible = false
	s.Results = nil
}
