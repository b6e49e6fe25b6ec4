package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "BioAlgoDB API"

// @Summary Health check
// @Description Liveness check, always ok while the process serves requests
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": serviceName, "status": "ok"})
}

func RegisterHealthRoutes(r *gin.RouterGroup) {
	r.GET("/health", health)
}

func RegisterRootRoutes(r *gin.Engine) {
	r.GET("/", root)
}
