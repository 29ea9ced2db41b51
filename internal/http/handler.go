package http

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/compounding"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/i18n"
	"github.com/guttosm/suppository-service/internal/logger"
	"github.com/guttosm/suppository-service/internal/middleware"
	"github.com/guttosm/suppository-service/internal/service"
)

const (
	exportFilename     = "suppository-base.csv"
	historyWriteBudget = 2 * time.Second
)

// Handler provides HTTP handlers for the calculation routes.
type Handler struct {
	calculator     service.Calculator
	history        service.HistoryService
	loggingService service.LoggingService
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHistory stores every successful calculation in the history service.
func WithHistory(history service.HistoryService) HandlerOption {
	return func(h *Handler) {
		h.history = history
	}
}

// WithLoggingService sends audit entries to the given logging service.
func WithLoggingService(ls service.LoggingService) HandlerOption {
	return func(h *Handler) {
		h.loggingService = ls
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(calculator service.Calculator, opts ...HandlerOption) *Handler {
	h := &Handler{
		calculator: calculator,
		history:    service.NewHistoryService(nil),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Calculate handles POST /api/calculate requests.
//
// @Summary      Calculate suppository base
// @Description  Runs the five-step density-ratio displacement calculation and returns the working, a comparison with common mistakes, and the export rows. Supports idempotency via Idempotency-Key header.
// @Tags         Calculations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CalculateRequest true "Batch parameters"
// @Success      200 {object} dto.SuccessResponse{data=dto.CalculateResponse} "Calculation result"
// @Failure      400 {object} dto.ErrorResponse "Malformed request body"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      422 {object} dto.ErrorResponse "Missing, invalid or conflicting inputs"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/calculate [post]
func (h *Handler) Calculate(c *gin.Context) {
	builder := NewResponseBuilder(c)

	out, ok := h.run(c, builder)
	if !ok {
		return
	}

	builder.SuccessOK(dto.CalculateResponse{
		Inputs:      out.Result.Inputs,
		Result:      out.Result,
		Steps:       out.Result.Steps(),
		Coaching:    out.Coaching,
		Export:      out.Export,
		Explanation: out.Explanation,
		Cached:      out.Cached,
	})
}

// Export handles POST /api/calculate/export requests.
//
// @Summary      Export calculation as CSV
// @Description  Runs the calculation and returns the export rows as a two-column CSV attachment.
// @Tags         Calculations
// @Accept       json
// @Produce      text/csv
// @Param        request body dto.CalculateRequest true "Batch parameters"
// @Success      200 {string} string "CSV file"
// @Failure      400 {object} dto.ErrorResponse "Malformed request body"
// @Failure      422 {object} dto.ErrorResponse "Missing, invalid or conflicting inputs"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/calculate/export [post]
func (h *Handler) Export(c *gin.Context) {
	builder := NewResponseBuilder(c)

	out, ok := h.run(c, builder)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := compounding.WriteCSV(&buf, out.Export); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// run binds the request, calculates, and records the outcome. It writes the
// error response itself and reports false on failure.
func (h *Handler) run(c *gin.Context, builder *ResponseBuilder) (service.Outcome, bool) {
	req, err := BuildRequestAndValidate[dto.CalculateRequest](c)
	if err != nil {
		if _, ok := err.(*dto.ValidationError); ok {
			builder.Fail(err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return service.Outcome{}, false
	}

	out, err := h.calculator.Calculate(c.Request.Context(), req.ToRaw())
	if err != nil {
		builder.Fail(err)
		return service.Outcome{}, false
	}

	recordOutcome(c, h.history, model.SourceAPI, out)
	middleware.AuditLog(h.loggingService, c, model.ActionCalculate, "Displacement calculation completed", outcomeFields(out))
	return out, true
}

// recordOutcome stores the outcome in history. Failures are logged and do
// not fail the request.
func recordOutcome(c *gin.Context, history service.HistoryService, source string, out service.Outcome) {
	if history == nil || !history.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), historyWriteBudget)
	defer cancel()

	record := service.NewCalculationRecord(source, middleware.GetRequestID(c), middleware.GetSessionID(c), out)
	if err := history.Record(ctx, record); err != nil {
		log := logger.Component("http")
		log.Warn().
			Err(err).
			Str("request_id", record.RequestID).
			Str("source", source).
			Msg("failed to record calculation history")
	}
}

func outcomeFields(out service.Outcome) map[string]interface{} {
	res := out.Result
	return map[string]interface{}{
		"mode":                  res.Mode.String(),
		"unit_count":            res.Inputs.UnitCount,
		"components":            len(res.Components),
		"required_base_batch_g": res.RequiredBaseBatchG,
		"capacity_warning":      res.Capacity.Any(),
		"cached":                out.Cached,
	}
}
