package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mangable-backend/internal/domains/apikey"
	"mangable-backend/internal/shared/middleware"
	"mangable-backend/internal/shared/response"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// KeyHandler wires the API key endpoints to the key service. Stateless.
type KeyHandler struct {
	service apikey.Service
}

func NewKeyHandler(service apikey.Service) *KeyHandler {
	return &KeyHandler{service: service}
}

// Create handles POST /api-keys. The response is the only time the caller
// ever sees the full secret.
func (h *KeyHandler) Create(c *gin.Context) {
	principal := middleware.CurrentUser(c)

	var req apikey.CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), principal.ID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// List handles GET /api-keys.
func (h *KeyHandler) List(c *gin.Context) {
	principal := middleware.CurrentUser(c)

	keys, err := h.service.List(c.Request.Context(), principal.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, keys)
}

// Revoke handles DELETE /api-keys/:id. Revocation soft-disables the key.
func (h *KeyHandler) Revoke(c *gin.Context) {
	principal := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid API key ID")
		return
	}

	if err := h.service.Revoke(c.Request.Context(), id, principal.ID); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *KeyHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)
	case errors.Is(err, apikey.ErrTooManyActiveKeys):
		response.Conflict(c, "Maximum number of active API keys reached")
	case errors.Is(err, apikey.ErrKeyNotFound):
		response.NotFound(c, "API key not found")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
