package middleware

import (
	"net/http"
	"strings"

	"github.com/wangyukai585/BioAlgoDB/models"
	"github.com/wangyukai585/BioAlgoDB/utils"
	"github.com/wangyukai585/BioAlgoDB/utils/response"

	"github.com/gin-gonic/gin"
)

const (
	claimsKey = "claims"

	ErrMissingToken = "missing bearer token"
	ErrInvalidToken = "invalid or expired token"
	ErrAdminOnly    = "admin role required"
)

// AuthMiddleware requires a valid bearer token and stores its claims in the context
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			response.Error(c, http.StatusUnauthorized, ErrMissingToken)
			return
		}

		claims, err := utils.ParseToken(secret, strings.TrimSpace(tokenString))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, ErrInvalidToken)
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// AdminRequired must run after AuthMiddleware
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, ErrMissingToken)
			return
		}
		if claims.Role != models.RoleAdmin {
			response.Error(c, http.StatusForbidden, ErrAdminOnly)
			return
		}
		c.Next()
	}
}

// AdminOnly is the guard wrapped around mutating catalog routes
func AdminOnly(secret []byte) []gin.HandlerFunc {
	return []gin.HandlerFunc{AuthMiddleware(secret), AdminRequired()}
}

// ClaimsFromContext returns the claims stored by AuthMiddleware
func ClaimsFromContext(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}
