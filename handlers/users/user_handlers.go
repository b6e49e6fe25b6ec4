package users

import (
	"errors"
	"net/http"

	"github.com/wangyukai585/BioAlgoDB/middleware"
	"github.com/wangyukai585/BioAlgoDB/services"
	"github.com/wangyukai585/BioAlgoDB/utils"
	"github.com/wangyukai585/BioAlgoDB/utils/response"
	"github.com/wangyukai585/BioAlgoDB/views"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's account
// @Summary Get User Profile
// @Tags Users
// @Produce json
// @Success 200 {object} views.UserView
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
// @Security Bearer
func (h *Handler) GetProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, middleware.ErrInvalidToken)
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		// the account was removed after the token was issued
		response.Error(c, http.StatusUnauthorized, middleware.ErrInvalidToken)
		return
	}
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.User(user))
}

// ListUsers lists accounts
// @Summary List users
// @Description q matches username or email, role filters by role
// @Tags Users
// @Produce json
// @Param q query string false "Keyword"
// @Param role query string false "admin or user"
// @Success 200 {array} views.UserView
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users [get]
// @Security Bearer
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context(), services.UserFilter{
		Keyword: utils.Keyword(c),
		Role:    c.Query("role"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.Users(users))
}

// GetUser returns one account
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} views.UserView
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
// @Security Bearer
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.User(user))
}

// UpdateUserRole grants or revokes the admin role
// @Summary Update a user's role
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateRoleRequest true "Role"
// @Success 200 {object} views.UserView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id}/role [put]
// @Security Bearer
func (h *Handler) UpdateUserRole(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}
	actor, ok := callerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, middleware.ErrInvalidToken)
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	user, err := h.service.SetRole(c.Request.Context(), actor, id, req.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, views.User(user))
}

// DeleteUser deletes an account
// @Summary Delete a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [delete]
// @Security Bearer
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := utils.ParseID(c, "id")
	if !ok {
		response.Error(c, http.StatusNotFound, ErrUserNotFound)
		return
	}
	actor, ok := callerID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, middleware.ErrInvalidToken)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": MsgUserDeleted})
}
