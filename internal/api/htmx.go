package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/render"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/service"
)

// htmx request and response headers
const (
	hxRequest  = "HX-Request"
	hxRetarget = "HX-Retarget"
	hxReswap   = "HX-Reswap"
)

// isHTMX reports whether the request came from an htmx trigger. Plain form
// posts get a redirect back to the page instead of a fragment.
func isHTMX(c *gin.Context) bool {
	return c.GetHeader(hxRequest) == "true"
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// sessionView builds the page view of a session for fragment responses
func sessionView(forms *service.FormService, c *gin.Context, sess *service.Session) render.PageView {
	page := &service.Page{
		Session:    sess,
		Summary:    sess.Criteria.Summary(),
		Toasts:     forms.Toasts(sess),
		Submitting: forms.Submitting(c.Request.Context(), sess.ID),
	}
	return render.NewPageView(page).Fragment()
}

// storeFailure answers a request whose session could not be read or written
func storeFailure(c *gin.Context, err error) {
	_ = c.Error(err)
	c.String(http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
}
