package stats

import (
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the catalog statistics route
func RegisterRoutes(r *gin.RouterGroup, service *services.StatsService) {
	h := &Handler{service: service}
	r.GET("/stats", h.GetStats)
}
