package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInvalidInput indicates batch inputs that cannot be calculated.
	ErrCodeInvalidInput = "invalid_input"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency is down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2026-03-01T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_input"`
	Message string `json:"message,omitempty" example:"invalid value: base_density_g_per_ml: must be greater than zero"`
	// Details maps each offending field to its reason
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-03-01T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnprocessableEntity:
		return ErrCodeInvalidInput
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}

// CalculateResponse is the body of a successful calculation.
//
// @Description Calculation result with coaching, export rows and worked steps
type CalculateResponse struct {
	Inputs      model.BatchInputs       `json:"inputs"`
	Result      model.CalculationResult `json:"result"`
	Steps       []model.Step            `json:"steps"`
	Coaching    model.CoachingReport    `json:"coaching"`
	Export      []model.ExportField     `json:"export"`
	Explanation []string                `json:"explanation"`
	Cached      bool                    `json:"cached"`
} // @name CalculateResponse

// ChatSessionResponse describes a session's current inputs.
//
// @Description Chat session state
type ChatSessionResponse struct {
	ID        string          `json:"id"`
	State     model.ChatState `json:"state"`
	Missing   []string        `json:"missing"`
	Messages  int             `json:"messages"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
} // @name ChatSessionResponse

// NewChatSessionResponse builds the response for a session.
func NewChatSessionResponse(s *model.ChatSession) ChatSessionResponse {
	return ChatSessionResponse{
		ID:        s.ID,
		State:     s.State,
		Missing:   s.State.Missing(),
		Messages:  s.Messages,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// HistoryListResponse is one page of calculation history.
//
// @Description Page of stored calculations, newest first
type HistoryListResponse struct {
	Items []model.CalculationRecord `json:"items"`
	Total int64                     `json:"total"`
	Limit int                       `json:"limit"`
	Skip  int                       `json:"skip"`
} // @name HistoryListResponse
