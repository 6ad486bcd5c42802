package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mangable-backend/internal/domains/comic"
	"mangable-backend/internal/shared/middleware"
	"mangable-backend/internal/shared/response"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ComicHandler wires the catalog endpoints to the comic service. Stateless.
type ComicHandler struct {
	service comic.Service
}

func NewComicHandler(service comic.Service) *ComicHandler {
	return &ComicHandler{service: service}
}

// ========================================
// CRUD ENDPOINTS
// ========================================

// Create handles POST /comics.
func (h *ComicHandler) Create(c *gin.Context) {
	principal := middleware.CurrentUser(c)

	var req comic.CreateComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/comics/"+created.ID.String())
	response.Success(c, http.StatusCreated, created)
}

// Get handles GET /comics/:id.
func (h *ComicHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, record)
}

// Update handles PATCH /comics/:id. Only fields present in the body change.
func (h *ComicHandler) Update(c *gin.Context) {
	principal := middleware.CurrentUser(c)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req comic.UpdateComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /comics/:id.
func (h *ComicHandler) Delete(c *gin.Context) {
	principal := middleware.CurrentUser(c)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ========================================
// SEARCH
// ========================================

// List handles GET /comics with filter/sort/page query parameters.
func (h *ComicHandler) List(c *gin.Context) {
	var params comic.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}

	meta := &response.Meta{
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
	}
	response.SuccessWithMeta(c, http.StatusOK, page.Results, meta)
}

// ========================================
// EXPORT ENDPOINTS
// ========================================

// ExportComicInfo handles GET /comics/:id/comicinfo.xml, served as a file
// attachment.
func (h *ComicHandler) ExportComicInfo(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	export, err := h.service.ExportComicInfo(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, "application/xml", export.XML)
}

// Cover handles GET /comics/:id/cover. Covers are stored by reference, so
// this returns the URL rather than image bytes.
func (h *ComicHandler) Cover(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	url, err := h.service.CoverURL(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"comic_id":  id,
		"cover_url": url,
	})
}

func (h *ComicHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comic ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *ComicHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)
	case errors.Is(err, comic.ErrComicNotFound):
		response.NotFound(c, "Comic not found")
	case errors.Is(err, comic.ErrForbidden):
		response.Forbidden(c, "Not allowed to modify this comic")
	case errors.Is(err, comic.ErrNoCover):
		response.NotFound(c, "No cover image set for this comic")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
