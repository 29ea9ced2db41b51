package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/i18n"
	"github.com/guttosm/suppository-service/internal/service"
)

// AnonymousActor is recorded for requests without instructor claims.
const AnonymousActor = "anonymous"

// JWTAuth requires a valid instructor bearer token and stores its claims on the context.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			Abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			Abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			Abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(string(ClaimsKey), claims)
		c.Next()
	}
}

// RequireRole rejects requests whose claims do not carry one of roles.
// It must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			Abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, i18n.ErrKeyUnauthorized)
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		Abort(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
	}
}

// GetClaims returns the instructor claims, or nil for anonymous requests.
func GetClaims(c *gin.Context) *dto.Claims {
	v, ok := c.Get(string(ClaimsKey))
	if !ok {
		return nil
	}
	claims, _ := v.(*dto.Claims)
	return claims
}

// Actor identifies who made the request in logs.
func Actor(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil && claims.Email != "" {
		return claims.Email
	}
	return AnonymousActor
}
