package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	lendingapp "github.com/shelfmaster/backend/internal/application/lending"
	"github.com/shelfmaster/backend/internal/interfaces/http/dto"
)

// LendingHandler handles loan ledger API endpoints
type LendingHandler struct {
	BaseHandler
	loanService *lendingapp.LoanService
	scanService *lendingapp.OverdueScanService
}

// NewLendingHandler creates a new LendingHandler
func NewLendingHandler(loanService *lendingapp.LoanService, scanService *lendingapp.OverdueScanService) *LendingHandler {
	return &LendingHandler{
		loanService: loanService,
		scanService: scanService,
	}
}

// Issue handles POST /api/v1/loans
func (h *LendingHandler) Issue(c *gin.Context) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req lendingapp.IssueLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	loan, err := h.loanService.Issue(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, loan)
}

// Return handles POST /api/v1/loans/:id/return
func (h *LendingHandler) Return(c *gin.Context) {
	h.transition(c, h.loanService.Return)
}

// Renew handles POST /api/v1/loans/:id/renew
func (h *LendingHandler) Renew(c *gin.Context) {
	h.transition(c, h.loanService.Renew)
}

// MarkDamaged handles POST /api/v1/loans/:id/damaged
func (h *LendingHandler) MarkDamaged(c *gin.Context) {
	h.transition(c, h.loanService.MarkDamaged)
}

// MarkLost handles POST /api/v1/loans/:id/lost
func (h *LendingHandler) MarkLost(c *gin.Context) {
	actor, loanID, ok := h.actorAndLoanID(c)
	if !ok {
		return
	}

	var req lendingapp.MarkLostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	loan, err := h.loanService.MarkLost(c.Request.Context(), actor, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loan)
}

// SettlePayment handles POST /api/v1/loans/:id/payments
func (h *LendingHandler) SettlePayment(c *gin.Context) {
	actor, loanID, ok := h.actorAndLoanID(c)
	if !ok {
		return
	}

	var req lendingapp.SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	payment, err := h.loanService.SettlePayment(c.Request.Context(), actor, loanID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// Get handles GET /api/v1/loans/:id
func (h *LendingHandler) Get(c *gin.Context) {
	loanID, ok := h.pathID(c)
	if !ok {
		return
	}

	loan, err := h.loanService.GetByID(c.Request.Context(), loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loan)
}

// List handles GET /api/v1/loans
func (h *LendingHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.Normalize()

	loans, total, err := h.loanService.List(c.Request.Context(), req.Offset(), req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, loans, total, req.Page, req.PageSize)
}

// ListByBorrower handles GET /api/v1/borrowers/:id/loans
func (h *LendingHandler) ListByBorrower(c *gin.Context) {
	borrowerID, ok := h.pathID(c)
	if !ok {
		return
	}

	loans, err := h.loanService.ListByBorrower(c.Request.Context(), borrowerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loans)
}

// ListBorrowerPenalties handles GET /api/v1/borrowers/:id/penalties
func (h *LendingHandler) ListBorrowerPenalties(c *gin.Context) {
	borrowerID, ok := h.pathID(c)
	if !ok {
		return
	}

	penalties, err := h.loanService.ListUnpaidPenaltiesByBorrower(c.Request.Context(), borrowerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, penalties)
}

// ListPenalties handles GET /api/v1/loans/:id/penalties
func (h *LendingHandler) ListPenalties(c *gin.Context) {
	loanID, ok := h.pathID(c)
	if !ok {
		return
	}

	penalties, err := h.loanService.ListPenalties(c.Request.Context(), loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, penalties)
}

// TriggerScan handles POST /api/v1/loans/scan, running one overdue sweep
// on demand
func (h *LendingHandler) TriggerScan(c *gin.Context) {
	stats, err := h.scanService.Scan(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// transition runs a body-less loan state change shared by return, renew
// and damaged
func (h *LendingHandler) transition(c *gin.Context, op func(ctx context.Context, actorID, loanID uuid.UUID) (*lendingapp.LoanResponse, error)) {
	actor, loanID, ok := h.actorAndLoanID(c)
	if !ok {
		return
	}

	loan, err := op(c.Request.Context(), actor, loanID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, loan)
}

func (h *LendingHandler) actorAndLoanID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	actor, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	loanID, ok := h.pathID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return actor, loanID, true
}
