package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditapp "github.com/shelfmaster/backend/internal/application/audit"
	"github.com/shelfmaster/backend/internal/interfaces/http/dto"
)

// AuditHandler handles audit trail API endpoints
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List handles GET /api/v1/audit with optional user_id and action filters
func (h *AuditHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.Normalize()

	ctx := c.Request.Context()

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "user_id must be a valid UUID")
			return
		}
		entries, total, err := h.auditService.ListByUser(ctx, userID, req.Offset(), req.PageSize)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.SuccessWithMeta(c, entries, total, req.Page, req.PageSize)
		return
	}

	if action := c.Query("action"); action != "" {
		entries, total, err := h.auditService.ListByAction(ctx, action, req.Offset(), req.PageSize)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.SuccessWithMeta(c, entries, total, req.Page, req.PageSize)
		return
	}

	entries, total, err := h.auditService.List(ctx, req.Offset(), req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, req.Page, req.PageSize)
}
