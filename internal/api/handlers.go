package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EminDurmuSS/TestKgeRecipe/internal/service"
)

// HealthCheck returns the health status of the frontend
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// RegisterRoutes registers every page, fragment and action route
func RegisterRoutes(router gin.IRouter, forms *service.FormService) {
	NewFormHandler(forms).RegisterRoutes(router)
	NewRecipeHandler(forms).RegisterRoutes(router)
}
