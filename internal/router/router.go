package router

import (
	"github.com/gin-gonic/gin"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/api"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/middleware"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/render"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/service"
)

// Options carries what the router needs beyond the form service
type Options struct {
	Tokens  *middleware.SessionTokens
	Cookie  middleware.CookieOptions
	Origins []string
}

// SetupRouter configures the application routes
func SetupRouter(forms *service.FormService, opts Options) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(render.MustTemplates())

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(opts.Origins))

	// Health check endpoint (no session)
	router.GET("/health", api.HealthCheck)

	pages := router.Group("")
	pages.Use(middleware.Session(opts.Tokens, opts.Cookie))
	api.RegisterRoutes(pages, forms)

	return router
}
