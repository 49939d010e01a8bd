package render

import (
	"fmt"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/criteria"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/notify"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/service"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

const (
	NoResultsMsg     = "No recipes match your criteria. Please adjust your filters."
	SubmitLabel      = "Find Recipes"
	SubmittingLabel  = "Finding Recipes..."
	ClickForDetails  = "Click for details"
	NoneSelectedText = "None selected"
)

type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

type SelectView struct {
	ID       criteria.SelectID
	Label    string
	Multiple bool
	Options  []OptionView
}

type WeightView struct {
	Field string
	Label string
	Value string
}

// ResultItem is one clickable recipe stub
type ResultItem struct {
	Number int
	ID     types.RecipeID
	Title  string
}

type ResultsView struct {
	Visible bool
	Items   []ResultItem
}

// ToastsView is the toast container. OOB marks it for an out-of-band swap
// when it rides along with another fragment.
type ToastsView struct {
	Toasts []notify.Notification
	OOB    bool
}

// PageView is the data of the full page template
type PageView struct {
	Selects           []SelectView
	Nutrition         []SelectView
	Ingredients       SelectView
	IngredientFilter  string
	IngredientsLoaded bool
	Weights           []WeightView
	TopK              int
	MinTopK           int
	MaxTopK           int
	Flexible          bool
	Summary           criteria.Summary
	Results           ResultsView
	Toasts            ToastsView
	Submitting        bool
	SubmitLabel       string
}

// NewPageView builds the page from a loaded session
func NewPageView(p *service.Page) PageView {
	state := p.Session.Criteria

	v := PageView{
		IngredientFilter:  p.IngredientFilter,
		IngredientsLoaded: p.IngredientsLoaded,
		TopK:              state.TopK,
		MinTopK:           criteria.MinTopK,
		MaxTopK:           criteria.MaxTopK,
		Flexible:          state.Flexible,
		Summary:           p.Summary,
		Results:           NewResultsView(state),
		Toasts:            ToastsView{Toasts: p.Toasts},
		Submitting:        p.Submitting,
		SubmitLabel:       SubmitLabel,
	}
	if p.Submitting {
		v.SubmitLabel = SubmittingLabel
	}

	for _, def := range criteria.StaticSelects {
		sv := newSelectView(state, def.ID, def.Label, def.Options)
		if criteria.IsNutritionBand(def.ID) {
			v.Nutrition = append(v.Nutrition, sv)
		} else {
			v.Selects = append(v.Selects, sv)
		}
	}
	v.Ingredients = newSelectView(state, criteria.IngredientsSelect, "Ingredients", ingredientOptions(state, p.Ingredients))

	v.Weights = []WeightView{
		{criteria.WeightCookingField, "Cooking Method", criteria.FormatWeight(state.Weights.CookingMethod)},
		{criteria.WeightCuisineField, "Cuisine Region", criteria.FormatWeight(state.Weights.CuisineRegion)},
		{criteria.WeightDietField, "Diet Types", criteria.FormatWeight(state.Weights.DietTypes)},
		{criteria.WeightIngredientsField, "Ingredients", criteria.FormatWeight(state.Weights.Ingredients)},
	}
	return v
}

// ingredientOptions keeps selected ingredients visible even when the search
// filter hides them, so a post never silently drops them.
func ingredientOptions(state *criteria.State, opts []criteria.Option) []criteria.Option {
	shown := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		shown[o.Value] = struct{}{}
	}
	var hidden []criteria.Option
	for _, v := range state.Selected(criteria.IngredientsSelect) {
		if _, ok := shown[v]; !ok {
			hidden = append(hidden, criteria.Option{Value: v, Label: criteria.IngredientLabel(v)})
		}
	}
	return append(hidden, opts...)
}

func newSelectView(state *criteria.State, id criteria.SelectID, label string, opts []criteria.Option) SelectView {
	sv := SelectView{ID: id, Label: label, Multiple: id.Multiple(), Options: make([]OptionView, 0, len(opts))}
	for _, o := range opts {
		sv.Options = append(sv.Options, OptionView{Value: o.Value, Label: o.Label, Selected: state.IsSelected(id, o.Value)})
	}
	return sv
}

// Fragment marks the page for a partial response: the toasts are swapped
// out of band next to the main fragment.
func (v PageView) Fragment() PageView {
	v.Toasts.OOB = true
	return v
}

// NewResultsView numbers the stored results from 1
func NewResultsView(state *criteria.State) ResultsView {
	v := ResultsView{Visible: state.ResultsVisible}
	for i, id := range state.Results {
		v.Items = append(v.Items, ResultItem{Number: i + 1, ID: id, Title: fmt.Sprintf("Recipe #%s", id)})
	}
	return v
}
