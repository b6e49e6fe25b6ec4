package users

import (
	"github.com/wangyukai585/BioAlgoDB/middleware"
	"github.com/wangyukai585/BioAlgoDB/services"

	"github.com/gin-gonic/gin"
)

const (
	ErrUserNotFound = "user not found"
	MsgUserDeleted  = "user deleted"
)

type Handler struct {
	service *services.UserService
}

// UpdateRoleRequest model for changing an account role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// callerID returns the id of the authenticated user
func callerID(c *gin.Context) (uint, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return 0, false
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, false
	}
	return id, true
}
