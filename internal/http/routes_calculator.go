package http

import (
	"github.com/gin-gonic/gin"
)

// CalculatorRoutes registers the structured calculation endpoints.
type CalculatorRoutes struct {
	handler *Handler
}

// NewCalculatorRoutes creates a new CalculatorRoutes instance.
func NewCalculatorRoutes(handler *Handler) *CalculatorRoutes {
	return &CalculatorRoutes{handler: handler}
}

// RegisterPublicRoutes implements PublicRouteGroup.
func (r *CalculatorRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/calculate", r.handler.Calculate)
	rg.POST("/calculate/export", r.handler.Export)
}
