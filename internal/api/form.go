package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/criteria"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/logging"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/middleware"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/render"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/service"
)

// FormHandler serves the search page and every action of its form
type FormHandler struct {
	forms *service.FormService
}

func NewFormHandler(forms *service.FormService) *FormHandler {
	return &FormHandler{forms: forms}
}

func (h *FormHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.Index)
	router.POST("/criteria", h.UpdateCriteria)
	router.POST("/criteria/remove", h.RemoveCriterion)
	router.POST("/criteria/clear", h.ClearCriteria)
	router.POST("/recommend", h.Recommend)
	router.POST("/notifications/:id/dismiss", h.Dismiss)
}

// Index renders the full page. The q parameter filters the ingredient options.
func (h *FormHandler) Index(c *gin.Context) {
	page, err := h.forms.Page(c.Request.Context(), middleware.SessionID(c), c.Query("q"))
	if err != nil {
		storeFailure(c, err)
		return
	}
	c.HTML(http.StatusOK, render.PageTemplate, render.NewPageView(page))
}

// UpdateCriteria reconciles a form change and returns the summary panel
func (h *FormHandler) UpdateCriteria(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	sess, err := h.forms.UpdateCriteria(c.Request.Context(), middleware.SessionID(c), c.Request.PostForm)
	if err != nil {
		storeFailure(c, err)
		return
	}
	if !isHTMX(c) {
		redirectHome(c)
		return
	}
	c.HTML(http.StatusOK, render.SummaryFragment, sessionView(h.forms, c, sess))
}

// RemoveCriterion deselects the value of one summary tag
func (h *FormHandler) RemoveCriterion(c *gin.Context) {
	group := criteria.Group(c.PostForm("group"))
	band := criteria.SelectID(c.PostForm("select"))
	value := c.PostForm("value")
	if group == "" || value == "" {
		c.String(http.StatusBadRequest, "group and value are required")
		return
	}
	if _, err := h.forms.RemoveCriterion(c.Request.Context(), middleware.SessionID(c), group, band, value); err != nil {
		storeFailure(c, err)
		return
	}
	h.page(c)
}

// ClearCriteria resets every criterion
func (h *FormHandler) ClearCriteria(c *gin.Context) {
	if _, err := h.forms.ClearCriteria(c.Request.Context(), middleware.SessionID(c)); err != nil {
		storeFailure(c, err)
		return
	}
	logging.Ctx(c.Request.Context()).Info().Msg("Criteria cleared")
	h.page(c)
}

// Recommend submits the form. Validation, in-flight and backend failures
// come back as toasts next to the unchanged results panel.
func (h *FormHandler) Recommend(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	sess, err := h.forms.Recommend(c.Request.Context(), middleware.SessionID(c), c.Request.PostForm)
	if sess == nil {
		storeFailure(c, err)
		return
	}
	if !isHTMX(c) {
		redirectHome(c)
		return
	}
	c.HTML(http.StatusOK, render.ResultsFragment, sessionView(h.forms, c, sess))
}

// Dismiss closes one toast
func (h *FormHandler) Dismiss(c *gin.Context) {
	sess, err := h.forms.Dismiss(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		storeFailure(c, err)
		return
	}
	if !isHTMX(c) {
		redirectHome(c)
		return
	}
	c.HTML(http.StatusOK, render.ToastsFragment, render.ToastsView{Toasts: h.forms.Toasts(sess)})
}

// page answers actions that re-render the whole app: htmx selects #app out
// of the full page, plain posts are redirected.
func (h *FormHandler) page(c *gin.Context) {
	if !isHTMX(c) {
		redirectHome(c)
		return
	}
	h.Index(c)
}
