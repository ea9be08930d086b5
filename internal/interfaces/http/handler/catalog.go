package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/shelfmaster/backend/internal/application/catalog"
)

// CatalogHandler handles book and copy API endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// AddCopyRequest assigns a new physical copy to a book
type AddCopyRequest struct {
	CopyNumber string `json:"copy_number" binding:"required"`
}

// CatalogueBook handles POST /api/v1/books
func (h *CatalogHandler) CatalogueBook(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CatalogueBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	book, err := h.catalogService.CatalogueBook(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, book)
}

// GetBook handles GET /api/v1/books/:id
func (h *CatalogHandler) GetBook(c *gin.Context) {
	bookID, ok := h.pathID(c)
	if !ok {
		return
	}

	book, err := h.catalogService.GetBook(c.Request.Context(), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, book)
}

// SearchBooks handles GET /api/v1/books?q=
func (h *CatalogHandler) SearchBooks(c *gin.Context) {
	query := c.Query("q")
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			h.BadRequest(c, "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	books, err := h.catalogService.SearchBooks(c.Request.Context(), query, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, books)
}

// AddCopy handles POST /api/v1/books/:id/copies
func (h *CatalogHandler) AddCopy(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	bookID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req AddCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	copy, err := h.catalogService.AddCopy(c.Request.Context(), actor, bookID, req.CopyNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, copy)
}

// ArchiveBook handles POST /api/v1/books/:id/archive
func (h *CatalogHandler) ArchiveBook(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	bookID, ok := h.pathID(c)
	if !ok {
		return
	}

	book, err := h.catalogService.ArchiveBook(c.Request.Context(), actor, bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, book)
}

// RestoreBook handles POST /api/v1/books/:id/restore
func (h *CatalogHandler) RestoreBook(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	bookID, ok := h.pathID(c)
	if !ok {
		return
	}

	book, err := h.catalogService.RestoreBook(c.Request.Context(), actor, bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, book)
}

// ListCopies handles GET /api/v1/books/:id/copies
func (h *CatalogHandler) ListCopies(c *gin.Context) {
	bookID, ok := h.pathID(c)
	if !ok {
		return
	}

	copies, err := h.catalogService.ListCopies(c.Request.Context(), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, copies)
}

// ArchiveCopy handles POST /api/v1/copies/:id/archive
func (h *CatalogHandler) ArchiveCopy(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	copyID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req catalogapp.ArchiveCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	copy, err := h.catalogService.ArchiveCopy(c.Request.Context(), actor, copyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, copy)
}

// RestoreCopy handles POST /api/v1/copies/:id/restore
func (h *CatalogHandler) RestoreCopy(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	copyID, ok := h.pathID(c)
	if !ok {
		return
	}

	copy, err := h.catalogService.RestoreCopy(c.Request.Context(), actor, copyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, copy)
}

// ListArchivedCopies handles GET /api/v1/copies/archived
func (h *CatalogHandler) ListArchivedCopies(c *gin.Context) {
	copies, err := h.catalogService.ListArchivedCopies(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, copies)
}
