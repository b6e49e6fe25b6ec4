package algorithms

import (
	"github.com/wangyukai585/BioAlgoDB/middleware"
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to algorithms
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, service *services.AlgorithmService, secret []byte) {
	h := &Handler{service: service}
	admin := middleware.AdminOnly(secret)

	algorithms := r.Group("/algorithms")
	{
		algorithms.GET("", h.ListAlgorithms)
		algorithms.GET("/:id", h.GetAlgorithm)

		algorithms.POST("", append(admin, h.CreateAlgorithm)...)
		algorithms.PUT("/:id", append(admin, h.UpdateAlgorithm)...)
		algorithms.DELETE("/:id", append(admin, h.DeleteAlgorithm)...)
	}
}
