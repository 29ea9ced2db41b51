package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup defines routes that need no role checks.
type PublicRouteGroup interface {
	// RegisterPublicRoutes registers public routes to the given router group.
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes whose guards depend on the router configuration.
type ProtectedRouteGroup interface {
	// RegisterProtectedRoutes registers protected routes to the given router group.
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

var (
	_ PublicRouteGroup    = (*CalculatorRoutes)(nil)
	_ PublicRouteGroup    = (*ChatRoutes)(nil)
	_ PublicRouteGroup    = (*AuthRoutes)(nil)
	_ ProtectedRouteGroup = (*HistoryRoutes)(nil)
)
