package dto

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestNewError_WithRequestID(t *testing.T) {
	err := NewError(ErrCodeInvalidInput, "missing unit_count").WithRequestID("req-1")

	assert.Equal(t, ErrCodeInvalidInput, err.Error)
	assert.Equal(t, "missing unit_count", err.Message)
	assert.Equal(t, "req-1", err.RequestID)
	assert.WithinDuration(t, time.Now(), err.Timestamp, time.Second)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusUnprocessableEntity, ErrCodeInvalidInput},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusRequestTimeout, ErrCodeTimeout},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusServiceUnavailable, ErrCodeUnavailable},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
		})
	}
}

func TestNewChatSessionResponse(t *testing.T) {
	n := 12
	session := &model.ChatSession{
		ID:       "s-1",
		State:    model.ChatState{UnitCount: &n},
		Messages: 3,
	}

	resp := NewChatSessionResponse(session)

	assert.Equal(t, "s-1", resp.ID)
	assert.Equal(t, 3, resp.Messages)
	assert.Equal(t, []string{
		model.FieldBlankWeightPerUnit,
		model.FieldBaseDensity,
		model.FieldComponents,
	}, resp.Missing)
}
