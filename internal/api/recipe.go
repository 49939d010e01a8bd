package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/middleware"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/render"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/service"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/types"
)

// RecipeHandler serves the recipe detail view
type RecipeHandler struct {
	forms *service.FormService
}

func NewRecipeHandler(forms *service.FormService) *RecipeHandler {
	return &RecipeHandler{forms: forms}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/recipes/:id", h.GetRecipe)
}

// GetRecipe returns the detail fragment for htmx and a standalone page
// otherwise. A failed fetch is retargeted to the toast container.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := types.ParseRecipeID(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "recipe not found")
		return
	}

	detail, sess, err := h.forms.RecipeDetail(c.Request.Context(), middleware.SessionID(c), recipeID)
	if err != nil {
		if sess == nil {
			storeFailure(c, err)
			return
		}
		if !isHTMX(c) {
			redirectHome(c)
			return
		}
		c.Header(hxRetarget, "#toasts")
		c.Header(hxReswap, "outerHTML")
		c.HTML(http.StatusOK, render.ToastsFragment, render.ToastsView{Toasts: h.forms.Toasts(sess)})
		return
	}

	if isHTMX(c) {
		c.HTML(http.StatusOK, render.DetailFragment, render.NewDetailView(detail))
		return
	}
	c.HTML(http.StatusOK, render.RecipeTemplate, render.NewDetailView(detail))
}
