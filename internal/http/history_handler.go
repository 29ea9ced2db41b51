package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/i18n"
	"github.com/guttosm/suppository-service/internal/service"
)

// HistoryHandler serves stored calculations to instructors.
type HistoryHandler struct {
	history service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /api/calculations.
//
// @Summary      List calculations
// @Description  Returns stored calculations, newest first.
// @Tags         History
// @Produce      json
// @Param        source query string false "Filter by source" Enums(api, chat, cli)
// @Param        session_id query string false "Filter by chat session"
// @Param        limit query int false "Page size (1-200, default 50)"
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.HistoryListResponse} "Page of calculations"
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      403 {object} dto.ErrorResponse "Not an instructor"
// @Failure      404 {object} dto.ErrorResponse "History is not enabled"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Security     BearerAuth
// @Router       /api/calculations [get]
func (h *HistoryHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	opts := query.Options()

	items, total, err := h.history.List(c.Request.Context(), opts)
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(dto.HistoryListResponse{
		Items: items,
		Total: total,
		Limit: opts.Limit,
		Skip:  opts.Skip,
	})
}

// Get handles GET /api/calculations/:id.
//
// @Summary      Get a calculation
// @Tags         History
// @Produce      json
// @Param        id path string true "Calculation ID"
// @Success      200 {object} dto.SuccessResponse{data=model.CalculationRecord} "Stored calculation"
// @Failure      400 {object} dto.ErrorResponse "Malformed id"
// @Failure      404 {object} dto.ErrorResponse "Calculation not found"
// @Security     BearerAuth
// @Router       /api/calculations/{id} [get]
func (h *HistoryHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)

	record, err := h.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.Fail(err)
		return
	}
	builder.SuccessOK(record)
}
