package auth

import "github.com/wangyukai585/BioAlgoDB/services"

type Handler struct {
	service *services.AuthService
}

// RegisterRequest model for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest model for login endpoints
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
