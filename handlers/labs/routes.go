package labs

import (
	"github.com/wangyukai585/BioAlgoDB/middleware"
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to labs
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, service *services.LabService, secret []byte) {
	h := &Handler{service: service}
	admin := middleware.AdminOnly(secret)

	labs := r.Group("/labs")
	{
		labs.GET("", h.ListLabs)
		labs.GET("/:id", h.GetLab)

		labs.POST("", append(admin, h.CreateLab)...)
		labs.PUT("/:id", append(admin, h.UpdateLab)...)
		labs.DELETE("/:id", append(admin, h.DeleteLab)...)
	}
}
