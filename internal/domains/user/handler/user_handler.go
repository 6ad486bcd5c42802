package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mangable-backend/internal/domains/user"
	"mangable-backend/internal/shared/middleware"
	"mangable-backend/internal/shared/response"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UserHandler wires the auth endpoints to the user service. Stateless.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /auth/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/users/"+dto.ID.String())
	response.Success(c, http.StatusCreated, dto)
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Me handles GET /auth/me.
func (h *UserHandler) Me(c *gin.Context) {
	principal := middleware.CurrentUser(c)
	if principal == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	dto := principal.ToDTO()
	response.Success(c, http.StatusOK, dto)
}

// handleError maps domain errors onto HTTP status codes.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)
	case errors.Is(err, user.ErrUsernameAlreadyTaken):
		response.Conflict(c, "Username already taken")
	case errors.Is(err, user.ErrEmailAlreadyTaken):
		response.Conflict(c, "Email already registered")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, "Incorrect username or password")
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
