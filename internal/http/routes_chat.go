package http

import (
	"github.com/gin-gonic/gin"
)

// ChatRoutes registers the conversational session endpoints.
type ChatRoutes struct {
	handler *ChatHandler
}

// NewChatRoutes creates a new ChatRoutes instance.
func NewChatRoutes(handler *ChatHandler) *ChatRoutes {
	return &ChatRoutes{handler: handler}
}

// RegisterPublicRoutes implements PublicRouteGroup.
func (r *ChatRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/chat/sessions")
	{
		sessions.POST("", r.handler.Start)
		sessions.GET("/:id", r.handler.Get)
		sessions.POST("/:id/messages", r.handler.Send)
		sessions.DELETE("/:id", r.handler.End)
	}
}
