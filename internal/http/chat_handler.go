package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/i18n"
	"github.com/guttosm/suppository-service/internal/middleware"
	"github.com/guttosm/suppository-service/internal/service"
)

// ChatHandler provides HTTP handlers for conversational sessions.
type ChatHandler struct {
	chat           service.ChatService
	history        service.HistoryService
	loggingService service.LoggingService
}

// NewChatHandler creates a new ChatHandler. history and loggingService may be nil.
func NewChatHandler(chat service.ChatService, history service.HistoryService, loggingService service.LoggingService) *ChatHandler {
	return &ChatHandler{
		chat:           chat,
		history:        history,
		loggingService: loggingService,
	}
}

// Start handles POST /api/chat/sessions.
//
// @Summary      Start a chat session
// @Description  Creates an empty session and returns the greeting with the list of missing inputs.
// @Tags         Chat
// @Produce      json
// @Success      201 {object} dto.SuccessResponse{data=service.ChatReply} "Session created"
// @Failure      503 {object} dto.ErrorResponse "Session storage unavailable"
// @Security     ApiKeyAuth
// @Router       /api/chat/sessions [post]
func (h *ChatHandler) Start(c *gin.Context) {
	builder := NewResponseBuilder(c)

	reply, err := h.chat.Start(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}
	middleware.SetSessionID(c, reply.SessionID)
	builder.SuccessCreated(reply)
}

// Get handles GET /api/chat/sessions/:id.
//
// @Summary      Get a chat session
// @Description  Returns the collected inputs and the fields still missing.
// @Tags         Chat
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.ChatSessionResponse} "Session state"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Security     ApiKeyAuth
// @Router       /api/chat/sessions/{id} [get]
func (h *ChatHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id := c.Param("id")
	middleware.SetSessionID(c, id)

	session, err := h.chat.Get(c.Request.Context(), id)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.NewChatSessionResponse(session))
}

// Send handles POST /api/chat/sessions/:id/messages.
//
// @Summary      Send a chat message
// @Description  Parses the message for batch inputs. "compute" runs the calculation, "reset" clears the session and "example" loads the worked example.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body dto.ChatMessageRequest true "Message"
// @Success      200 {object} dto.SuccessResponse{data=service.ChatReply} "Assistant reply"
// @Failure      400 {object} dto.ErrorResponse "Empty or oversized message"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Security     ApiKeyAuth
// @Router       /api/chat/sessions/{id}/messages [post]
func (h *ChatHandler) Send(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id := c.Param("id")
	middleware.SetSessionID(c, id)

	var req dto.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	reply, err := h.chat.Send(c.Request.Context(), id, req.Text)
	if err != nil {
		builder.Fail(err)
		return
	}

	if reply.Outcome != nil {
		recordOutcome(c, h.history, model.SourceChat, *reply.Outcome)
		middleware.AuditLog(h.loggingService, c, model.ActionChatCompute, "Chat calculation completed", outcomeFields(*reply.Outcome))
	}
	builder.SuccessOK(reply)
}

// End handles DELETE /api/chat/sessions/:id.
//
// @Summary      End a chat session
// @Tags         Chat
// @Param        id path string true "Session ID"
// @Success      204 "Session deleted"
// @Failure      404 {object} dto.ErrorResponse "Session not found or expired"
// @Security     ApiKeyAuth
// @Router       /api/chat/sessions/{id} [delete]
func (h *ChatHandler) End(c *gin.Context) {
	id := c.Param("id")
	middleware.SetSessionID(c, id)

	if err := h.chat.End(c.Request.Context(), id); err != nil {
		NewResponseBuilder(c).Fail(err)
		return
	}
	c.Status(http.StatusNoContent)
}
