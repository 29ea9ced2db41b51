package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/domain/dto"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/i18n"
	"github.com/guttosm/suppository-service/internal/middleware"
	"github.com/guttosm/suppository-service/internal/service"
)

// AuthHandler provides HTTP handlers for instructor sign-in.
type AuthHandler struct {
	authService    service.AuthService
	loggingService service.LoggingService
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService, loggingService service.LoggingService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		loggingService: loggingService,
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Instructor sign-in
// @Description  Checks instructor credentials and returns a bearer token for the calculation history endpoints.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Signed in"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Fail(err)
		return
	}

	tokenPair, instructor, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		message := "Sign-in internal error"
		if errors.Is(err, service.ErrInvalidCredentials) {
			message = "Failed sign-in attempt"
		}
		middleware.AuditLogError(h.loggingService, c, model.ActionLogin, message, err, map[string]interface{}{
			"email": req.Email,
		})
		builder.Fail(err)
		return
	}

	middleware.AuditLog(h.loggingService, c, model.ActionLogin, "Instructor signed in", map[string]interface{}{
		"email": instructor.Email,
	})

	builder.SuccessOK(dto.LoginResponse{
		AccessToken: tokenPair.AccessToken,
		ExpiresIn:   tokenPair.ExpiresIn,
		Instructor: dto.InstructorResponse{
			Email: instructor.Email,
			Role:  instructor.Role,
		},
	})
}
