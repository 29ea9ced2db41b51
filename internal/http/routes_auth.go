package http

import (
	"github.com/gin-gonic/gin"
)

// AuthRoutes registers instructor sign-in.
type AuthRoutes struct {
	handler *AuthHandler
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(handler *AuthHandler) *AuthRoutes {
	return &AuthRoutes{handler: handler}
}

// RegisterPublicRoutes implements PublicRouteGroup.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", r.handler.Login)
}
