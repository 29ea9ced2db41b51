package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/middleware"
)

// HistoryRoutes registers the calculation history endpoints.
type HistoryRoutes struct {
	handler *HistoryHandler
}

// NewHistoryRoutes creates a new HistoryRoutes instance.
func NewHistoryRoutes(handler *HistoryHandler) *HistoryRoutes {
	return &HistoryRoutes{handler: handler}
}

// RegisterProtectedRoutes implements ProtectedRouteGroup. When instructor
// sign-in is configured the routes require an instructor token.
func (r *HistoryRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	calculations := rg.Group("/calculations")
	if cfg.AuthService != nil {
		calculations.Use(
			middleware.JWTAuth(cfg.AuthService),
			middleware.RequireRole(model.RoleInstructor),
		)
	}
	calculations.GET("", r.handler.List)
	calculations.GET("/:id", r.handler.Get)
}
