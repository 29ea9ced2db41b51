package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/circuitbreaker"
	"github.com/guttosm/suppository-service/internal/compounding"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/i18n"
	"github.com/guttosm/suppository-service/internal/middleware"
	"github.com/guttosm/suppository-service/internal/service"
)

// Response DTO pools for reducing allocations.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	resp.Data = nil
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	resp.Error = ""
	resp.Message = ""
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	resp.Details = nil
	resp.TraceID = ""
	errorResponsePool.Put(resp)
}

// Validator is implemented by request bodies that check themselves after binding.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the JSON body into T and runs its Validate
// method when it has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	if validator, ok := any(&req).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// ResponseBuilder writes the JSON envelopes. Envelopes are pooled because
// gin serializes synchronously.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends a successful response with the given data.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error sends a translated error response. A non-nil err is attached to the
// gin context so the error handler logs it.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorWithDetails(statusCode, messageKey, nil, err)
}

// ErrorWithDetails is Error with a field → reason map.
func (b *ResponseBuilder) ErrorWithDetails(statusCode int, messageKey string, details map[string]string, err error) {
	resp := getErrorResponse()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// Only unexpected failures go to the error log.
	if err != nil && statusCode >= http.StatusInternalServerError {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}

// Fail maps a service or domain error to its status and message.
func (b *ResponseBuilder) Fail(err error) {
	status, key, details := classify(err)
	b.ErrorWithDetails(status, key, details, err)
}

// classify maps known errors to a status, message key and optional details.
func classify(err error) (int, string, map[string]string) {
	var inputErr *compounding.InputError
	var validationErr *dto.ValidationError
	switch {
	case errors.As(err, &inputErr):
		return http.StatusUnprocessableEntity, inputErrorKey(inputErr.Kind), inputErr.Fields
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody,
			map[string]string{validationErr.Field: validationErr.Message}
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound, i18n.ErrKeySessionNotFound, nil
	case errors.Is(err, service.ErrEmptyMessage):
		return http.StatusBadRequest, i18n.ErrKeyMessageEmpty, nil
	case errors.Is(err, service.ErrMessageTooLong):
		return http.StatusBadRequest, i18n.ErrKeyMessageTooLong, nil
	case errors.Is(err, service.ErrHistoryDisabled):
		return http.StatusNotFound, i18n.ErrKeyHistoryDisabled, nil
	case errors.Is(err, service.ErrCalculationNotFound):
		return http.StatusNotFound, i18n.ErrKeyCalculationNotFound, nil
	case errors.Is(err, service.ErrInvalidCalculationID):
		return http.StatusBadRequest, i18n.ErrKeyInvalidCalculationID, nil
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, nil
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyUnavailable, nil
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout, nil
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError, nil
	}
}

func inputErrorKey(kind compounding.Kind) string {
	switch kind {
	case compounding.KindIncompleteInput:
		return i18n.ErrKeyIncompleteInput
	case compounding.KindModeConflict:
		return i18n.ErrKeyModeConflict
	default:
		return i18n.ErrKeyInvalidValue
	}
}
