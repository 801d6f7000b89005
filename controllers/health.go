package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/response"
)

// HealthController serves the liveness endpoint and the API root.
type HealthController struct {
	docsURL string
}

func NewHealthController(docsURL string) *HealthController {
	return &HealthController{docsURL: docsURL}
}

// Health handles GET /health.
func (ctrl *HealthController) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

// Root handles GET /api/v1/.
func (ctrl *HealthController) Root(c *gin.Context) {
	response.Send(c, response.OK, response.CodeSuccess, "API is running", gin.H{
		"status":    "ok",
		"version":   "1.0.0",
		"docs":      ctrl.docsURL,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
