package tools

import (
	"github.com/wangyukai585/BioAlgoDB/middleware"
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to tools
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, service *services.ToolService, secret []byte) {
	h := &Handler{service: service}
	admin := middleware.AdminOnly(secret)

	tools := r.Group("/tools")
	{
		tools.GET("", h.ListTools)
		tools.GET("/:id", h.GetTool)

		tools.POST("", append(admin, h.CreateTool)...)
		tools.PUT("/:id", append(admin, h.UpdateTool)...)
		tools.DELETE("/:id", append(admin, h.DeleteTool)...)
	}
}
