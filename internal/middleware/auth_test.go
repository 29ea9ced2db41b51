package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithKeys(keys map[string]bool, header, lang string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), APIKeyAuth(keys))
	router.POST("/api/calculate", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/api/calculate?api_key=lab-key", nil)
	if header != "" {
		req.Header.Set(APIKeyHeader, header)
	}
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]bool{"lab-key": true, "pharmacy-key": true, "retired-key": false}

	tests := []struct {
		name    string
		keys    map[string]bool
		header  string
		status  int
		message string
	}{
		{name: "accepted key", keys: keys, header: "pharmacy-key", status: http.StatusOK},
		{name: "key only in query string", keys: keys, status: http.StatusUnauthorized, message: "API key is required"},
		{name: "unknown key", keys: keys, header: "lab-key-2", status: http.StatusUnauthorized, message: "Invalid API key"},
		{name: "disabled key", keys: keys, header: "retired-key", status: http.StatusUnauthorized, message: "Invalid API key"},
		{name: "no keys configured", header: "", status: http.StatusOK},
		{name: "only disabled keys still enforce", keys: map[string]bool{"retired-key": false}, header: "retired-key", status: http.StatusUnauthorized, message: "Invalid API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithKeys(tt.keys, tt.header, "")

			assert.Equal(t, tt.status, w.Code)
			if tt.message == "" {
				return
			}
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestAPIKeyAuth_Localized(t *testing.T) {
	w := serveWithKeys(map[string]bool{"lab-key": true}, "", "pt-BR,pt;q=0.9")
	assert.Contains(t, w.Body.String(), "Chave de API é obrigatória")

	w = serveWithKeys(map[string]bool{"lab-key": true}, "nope", "nl")
	assert.Contains(t, w.Body.String(), "Ongeldige API-sleutel")
}

func TestKnownKey(t *testing.T) {
	keys := map[string]bool{"a": true, "b": false}
	assert.True(t, knownKey(keys, "a"))
	assert.False(t, knownKey(keys, "b"))
	assert.False(t, knownKey(keys, ""))
	assert.False(t, knownKey(nil, "a"))
}
