package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/criteria"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/notify"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/service"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

func renderDoc(t *testing.T, name string, data any) *goquery.Document {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Execute(&buf, tmpl, name, data))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func ptr(f float64) *float64 { return &f }

func TestDetail(t *testing.T) {
	t.Run("should render every listing and fallback", func(t *testing.T) {
		detail := &types.RecipeDetail{
			RecipeID:               17,
			Name:                   "Pancakes",
			MealType:               types.NewFlexibleItems(" breakfast ", "brunch"),
			DietTypes:              "Vegetarian, ",
			RecipeIngredientParts:  types.NewFlexibleString("egg, flour, milk"),
			BestUsdaIngredientName: types.NewFlexibleString("Egg, whole; Wheat flour"),
			RecipeInstructions:     "Mix.\n\n  Fry.  ",
			Calories:               ptr(420),
			ProteinContent:         ptr(0),
			CholesterolContent:     ptr(12.5),
		}

		doc := renderDoc(t, DetailFragment, NewDetailView(detail))

		assert.Equal(t, "Pancakes", doc.Find("h3").Text())
		assert.Equal(t, NotSpecified, doc.Find(".cooking-method").Text())
		assert.Equal(t, NotSpecified, doc.Find(".health-types").Text())
		assert.Equal(t, []string{"breakfast", "brunch"}, doc.Find(".meal-types .badge").Map(func(_ int, s *goquery.Selection) string { return s.Text() }))
		assert.Equal(t, 1, doc.Find(".diet-types .badge").Length())

		listings := doc.Find(".listing")
		require.Equal(t, 3, listings.Length())
		assert.Equal(t, 3, listings.Eq(0).Find("li").Length())
		assert.Equal(t, []string{"Egg, whole", "Wheat flour"}, listings.Eq(1).Find("li").Map(func(_ int, s *goquery.Selection) string { return s.Text() }))
		assert.Equal(t, NoIngredientsMsg, listings.Eq(2).Find("li.empty").Text())

		facts := doc.Find(".nutrition .fact-value").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
		assert.Equal(t, []string{"420", "N/A", "N/A", "N/A", "12.5mg", "N/A", "N/A", "N/A"}, facts)

		steps := doc.Find(".instruction-step")
		require.Equal(t, 2, steps.Length())
		assert.Equal(t, "2", steps.Eq(1).Find(".step-number").Text())
		assert.Equal(t, "Fry.", steps.Eq(1).Find(".step-text").Text())
	})

	t.Run("should fall back for an empty recipe", func(t *testing.T) {
		doc := renderDoc(t, DetailFragment, NewDetailView(&types.RecipeDetail{RecipeID: 3}))

		assert.Equal(t, "Recipe #3", doc.Find("h3").Text())
		assert.Equal(t, 0, doc.Find(".alert-light").Not(".instructions .alert-light").Length())
		assert.Contains(t, doc.Find(".instructions").Text(), NoInstructionMsg)
		assert.Equal(t, 3, doc.Find("li.empty").Length())
	})

	t.Run("should read the legacy health field", func(t *testing.T) {
		var detail types.RecipeDetail
		require.NoError(t, detail.UnmarshalJSON([]byte(`{"RecipeId": 1, "Healthy_Type": "Low Fat, High Protein"}`)))

		doc := renderDoc(t, DetailFragment, NewDetailView(&detail))
		assert.Equal(t, 2, doc.Find(".health-types .badge").Length())
	})

	t.Run("should escape backend text", func(t *testing.T) {
		doc := renderDoc(t, DetailFragment, NewDetailView(&types.RecipeDetail{RecipeID: 1, Name: "<script>alert(1)</script>"}))
		assert.Equal(t, 0, doc.Find("script").Length())
		assert.Equal(t, "<script>alert(1)</script>", doc.Find("h3").Text())
	})
}

func newTestPage() *service.Page {
	sess := service.NewSession("s")
	return &service.Page{
		Session:           sess,
		Summary:           sess.Criteria.Summary(),
		IngredientsLoaded: true,
		Ingredients:       criteria.IngredientOptions([]string{"egg", "flour"}, ""),
	}
}

func TestPage(t *testing.T) {
	t.Run("should reflect the session state", func(t *testing.T) {
		p := newTestPage()
		state := p.Session.Criteria
		state.Select(criteria.CookingMethodSelect, "grill")
		state.Select(criteria.IngredientsSelect, "egg", "saffron")
		state.Select(criteria.FatSelect, "Low Fat")
		state.Weights.DietTypes = 2.5
		state.TopK = 12
		state.Flexible = true
		p.Summary = state.Summary()

		doc := renderDoc(t, PageTemplate, NewPageView(p))

		assert.Equal(t, "grill", doc.Find("#cooking-method option[selected]").AttrOr("value", ""))
		assert.Equal(t, []string{"saffron", "egg"}, doc.Find("#ingredients option[selected]").Map(func(_ int, s *goquery.Selection) string { return s.AttrOr("value", "") }))
		assert.Equal(t, "2.5", doc.Find("#weight-diet").AttrOr("value", ""))
		assert.Equal(t, "12", doc.Find("#num-results").AttrOr("value", ""))
		assert.True(t, doc.Find("#flexible-matching").Is("[checked]"))

		summary := doc.Find("#criteria-summary")
		_, hidden := summary.Attr("hidden")
		assert.False(t, hidden)
		fat := summary.Find(`[data-group="nutrition"] .tag`)
		require.Equal(t, 1, fat.Length())
		assert.Equal(t, "fat-level", fat.AttrOr("data-select", ""))
		assert.Equal(t, 3, summary.Find(".none-selected").Length())

		assert.Equal(t, SubmitLabel, doc.Find("#submit-button").Text())
		_, disabled := doc.Find("#submit-button").Attr("disabled")
		assert.False(t, disabled)
	})

	t.Run("should hide summary and results on a fresh session", func(t *testing.T) {
		doc := renderDoc(t, PageTemplate, NewPageView(newTestPage()))

		_, hidden := doc.Find("#criteria-summary").Attr("hidden")
		assert.True(t, hidden)
		_, hidden = doc.Find("#results-section").Attr("hidden")
		assert.True(t, hidden)
	})

	t.Run("should disable the submit control while submitting", func(t *testing.T) {
		p := newTestPage()
		p.Submitting = true

		doc := renderDoc(t, PageTemplate, NewPageView(p))
		button := doc.Find("#submit-button")
		assert.Equal(t, SubmittingLabel, button.Text())
		_, disabled := button.Attr("disabled")
		assert.True(t, disabled)
	})
}

func TestResults(t *testing.T) {
	t.Run("should number the recipes", func(t *testing.T) {
		p := newTestPage()
		p.Session.Criteria.SetResults([]types.RecipeID{31, 7})

		doc := renderDoc(t, ResultsFragment, NewPageView(p).Fragment())
		items := doc.Find(".recipe-item")
		require.Equal(t, 2, items.Length())
		assert.Equal(t, "1", items.Eq(0).Find(".recipe-number").Text())
		assert.Equal(t, "Recipe #31", items.Eq(0).Find(".recipe-name").Text())
		assert.Equal(t, "/recipes/7", items.Eq(1).AttrOr("href", ""))
		assert.Equal(t, ClickForDetails, items.Eq(1).Find(".recipe-tag").Text())
		assert.Equal(t, "true", doc.Find("#toasts").AttrOr("hx-swap-oob", ""))
	})

	t.Run("should show the empty alert", func(t *testing.T) {
		p := newTestPage()
		p.Session.Criteria.SetResults(nil)

		doc := renderDoc(t, ResultsFragment, NewPageView(p))
		assert.Equal(t, 0, doc.Find(".recipe-item").Length())
		assert.Equal(t, NoResultsMsg, doc.Find("#recipe-list .alert").Text())
		_, hidden := doc.Find("#results-section").Attr("hidden")
		assert.False(t, hidden)
	})
}

func TestToasts(t *testing.T) {
	center := notify.NewCenter(time.Minute)
	var stack notify.Stack
	center.Notify(&stack, "first", notify.Info)
	center.Notify(&stack, "second", notify.Error)

	doc := renderDoc(t, ToastsFragment, ToastsView{Toasts: center.Active(&stack)})
	toasts := doc.Find(".toast")
	require.Equal(t, 2, toasts.Length())
	assert.True(t, toasts.Eq(1).HasClass("toast-error"))
	assert.Equal(t, "second", toasts.Eq(1).Find(".toast-body").Text())
	_, oob := doc.Find("#toasts").Attr("hx-swap-oob")
	assert.False(t, oob)
}
