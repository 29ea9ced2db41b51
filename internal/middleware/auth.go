package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/i18n"
)

// APIKeyHeader carries a static API key for machine clients.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth requires one of validKeys in the X-API-Key header. An empty key
// set disables the check.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			Abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if !knownKey(validKeys, key) {
			Abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidAPIKey)
			return
		}
		c.Next()
	}
}

func knownKey(validKeys map[string]bool, key string) bool {
	found := 0
	for k, enabled := range validKeys {
		if enabled {
			found |= subtle.ConstantTimeCompare([]byte(k), []byte(key))
		}
	}
	return found == 1
}
