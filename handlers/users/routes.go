package users

import (
	"github.com/wangyukai585/BioAlgoDB/middleware"
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to user accounts
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, service *services.UserService, secret []byte) {
	h := &Handler{service: service}
	admin := middleware.AdminOnly(secret)

	users := r.Group("/users")
	{
		users.GET("/me", middleware.AuthMiddleware(secret), h.GetProfile)

		users.GET("", append(admin, h.ListUsers)...)
		users.GET("/:id", append(admin, h.GetUser)...)
		users.PUT("/:id/role", append(admin, h.UpdateUserRole)...)
		users.DELETE("/:id", append(admin, h.DeleteUser)...)
	}
}
