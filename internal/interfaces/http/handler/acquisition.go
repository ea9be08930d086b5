package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	acquisitionapp "github.com/shelfmaster/backend/internal/application/acquisition"
	"github.com/shelfmaster/backend/internal/domain/acquisition"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/interfaces/http/dto"
)

// AcquisitionHandler handles acquisition workflow API endpoints
type AcquisitionHandler struct {
	BaseHandler
	acquisitionService *acquisitionapp.AcquisitionService
}

// NewAcquisitionHandler creates a new AcquisitionHandler
func NewAcquisitionHandler(acquisitionService *acquisitionapp.AcquisitionService) *AcquisitionHandler {
	return &AcquisitionHandler{acquisitionService: acquisitionService}
}

// Request handles POST /api/v1/acquisitions
func (h *AcquisitionHandler) Request(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req acquisitionapp.RequestAcquisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	acq, err := h.acquisitionService.Request(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, acq)
}

// Approve handles POST /api/v1/acquisitions/:id/approve
func (h *AcquisitionHandler) Approve(c *gin.Context) {
	h.advance(c, h.acquisitionService.Approve)
}

// MarkDelivered handles POST /api/v1/acquisitions/:id/delivered
func (h *AcquisitionHandler) MarkDelivered(c *gin.Context) {
	h.advance(c, h.acquisitionService.MarkDelivered)
}

// MarkChecked handles POST /api/v1/acquisitions/:id/checked
func (h *AcquisitionHandler) MarkChecked(c *gin.Context) {
	h.advance(c, h.acquisitionService.MarkChecked)
}

// Reject handles POST /api/v1/acquisitions/:id/reject
func (h *AcquisitionHandler) Reject(c *gin.Context) {
	actor, acqID, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req acquisitionapp.RejectAcquisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	acq, err := h.acquisitionService.Reject(c.Request.Context(), actor, acqID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, acq)
}

// Catalogue handles POST /api/v1/acquisitions/:id/catalogue
func (h *AcquisitionHandler) Catalogue(c *gin.Context) {
	actor, acqID, ok := h.actorAndID(c)
	if !ok {
		return
	}

	var req acquisitionapp.CatalogueAcquisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.acquisitionService.Catalogue(c.Request.Context(), actor, acqID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get handles GET /api/v1/acquisitions/:id
func (h *AcquisitionHandler) Get(c *gin.Context) {
	acqID, ok := h.pathID(c)
	if !ok {
		return
	}

	acq, err := h.acquisitionService.Get(c.Request.Context(), acqID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, acq)
}

// GetByReferenceNo handles GET /api/v1/acquisitions/ref/:reference_no
func (h *AcquisitionHandler) GetByReferenceNo(c *gin.Context) {
	referenceNo := c.Param("reference_no")
	if referenceNo == "" {
		h.BadRequest(c, "reference_no is required")
		return
	}

	acq, err := h.acquisitionService.GetByReferenceNo(c.Request.Context(), referenceNo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, acq)
}

// List handles GET /api/v1/acquisitions with an optional status filter
func (h *AcquisitionHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.Normalize()

	if raw := c.Query("status"); raw != "" {
		status := acquisition.AcquisitionStatus(raw)
		if !status.IsValid() {
			h.HandleError(c, shared.NewDomainError(shared.CodeInvalidInput, "Unknown acquisition status"))
			return
		}
		acqs, total, err := h.acquisitionService.ListByStatus(c.Request.Context(), status, req.Offset(), req.PageSize)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.SuccessWithMeta(c, acqs, total, req.Page, req.PageSize)
		return
	}

	acqs, total, err := h.acquisitionService.List(c.Request.Context(), req.Offset(), req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, acqs, total, req.Page, req.PageSize)
}

// ListPayments handles GET /api/v1/acquisitions/:id/payments
func (h *AcquisitionHandler) ListPayments(c *gin.Context) {
	acqID, ok := h.pathID(c)
	if !ok {
		return
	}

	payments, err := h.acquisitionService.ListPayments(c.Request.Context(), acqID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// RegisterVendor handles POST /api/v1/vendors
func (h *AcquisitionHandler) RegisterVendor(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req acquisitionapp.RegisterVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	vendor, err := h.acquisitionService.RegisterVendor(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// ListVendors handles GET /api/v1/vendors
func (h *AcquisitionHandler) ListVendors(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.Normalize()

	vendors, total, err := h.acquisitionService.ListVendors(c.Request.Context(), req.Offset(), req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, vendors, total, req.Page, req.PageSize)
}

func (h *AcquisitionHandler) advance(c *gin.Context, op func(ctx context.Context, actorID, acquisitionID uuid.UUID) (*acquisitionapp.AcquisitionResponse, error)) {
	actor, acqID, ok := h.actorAndID(c)
	if !ok {
		return
	}

	acq, err := op(c.Request.Context(), actor, acqID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, acq)
}

func (h *AcquisitionHandler) actorAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	acqID, ok := h.pathID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return actor, acqID, true
}
