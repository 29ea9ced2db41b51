//go:build contract

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store := service.NewMemorySessionStore(10, time.Hour)
	t.Cleanup(store.Stop)

	cfg := DefaultRouterConfig()
	cfg.ChatService = service.NewChatService(store, service.NewCalculatorService())
	return NewRouter(NewHandler(service.NewCalculatorService()), NewHealthHandler(), cfg)
}

// envelope decodes the success envelope and returns its data as an object.
func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.False(t, resp.Timestamp.IsZero())
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data must be an object")
	return data
}

func assertErrorContract(t *testing.T, w *httptest.ResponseRecorder, code string) dto.ErrorResponse {
	t.Helper()
	resp := decodeError(t, w)
	assert.Equal(t, code, resp.Error)
	assert.NotEmpty(t, resp.Message)
	assert.NotEmpty(t, resp.RequestID)
	assert.False(t, resp.Timestamp.IsZero())
	return resp
}

func TestContract_Calculate(t *testing.T) {
	router := contractRouter(t)

	t.Run("200 carries inputs, result and teaching output", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/calculate", workedExampleBody)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		data := envelope(t, w)
		for _, key := range []string{"inputs", "result", "steps", "coaching", "export", "explanation", "cached"} {
			assert.Contains(t, data, key)
		}
		result := data["result"].(map[string]interface{})
		for _, key := range []string{
			"mode", "components", "total_api_batch_g", "displaced_batch_g",
			"required_base_batch_g", "required_base_per_unit_g", "capacity",
		} {
			assert.Contains(t, result, key)
		}
		assert.Equal(t, "density", result["mode"])
	})

	t.Run("400 on malformed JSON", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/calculate", `{"unit_count":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assertErrorContract(t, w, dto.ErrCodeInvalidRequest)
	})

	t.Run("422 names every missing field", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/calculate",
			`{"unit_count": 6, "components": [{"amount": 100, "unit": "mg", "density": 2}]}`)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := assertErrorContract(t, w, dto.ErrCodeInvalidInput)
		assert.Contains(t, resp.Details, "blank_weight_per_unit_g")
		assert.Contains(t, resp.Details, "base_density_g_per_ml")
	})

	t.Run("export is a CSV attachment", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/api/calculate/export", workedExampleBody)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "suppository-base.csv")
		assert.Contains(t, w.Body.String(), "field,value")
	})
}

func TestContract_ChatSession(t *testing.T) {
	router := contractRouter(t)

	w := doJSON(router, http.MethodPost, "/api/chat/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	start := envelope(t, w)
	id, _ := start["session_id"].(string)
	require.NotEmpty(t, id)
	for _, key := range []string{"lines", "state", "missing"} {
		assert.Contains(t, start, key)
	}

	w = doJSON(router, http.MethodPost, "/api/chat/sessions/"+id+"/messages", `{"text": "example"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/api/chat/sessions/"+id+"/messages", `{"text": "compute"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, envelope(t, w), "outcome")

	w = doJSON(router, http.MethodGet, "/api/chat/sessions/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	session := envelope(t, w)
	for _, key := range []string{"id", "state", "missing", "messages", "created_at", "updated_at"} {
		assert.Contains(t, session, key)
	}

	w = doJSON(router, http.MethodPost, "/api/chat/sessions/"+id+"/messages", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assertErrorContract(t, w, dto.ErrCodeInvalidRequest)

	w = doJSON(router, http.MethodDelete, "/api/chat/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/chat/sessions/"+id, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assertErrorContract(t, w, dto.ErrCodeNotFound)
}

func TestContract_HistoryDisabled(t *testing.T) {
	w := doJSON(contractRouter(t), http.MethodGet, "/api/calculations", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assertErrorContract(t, w, dto.ErrCodeNotFound)
}

func TestContract_Health(t *testing.T) {
	router := contractRouter(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		t.Run(path, func(t *testing.T) {
			w := doJSON(router, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "ok", resp["status"])
		})
	}
}
