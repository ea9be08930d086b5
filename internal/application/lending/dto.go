package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shelfmaster/backend/internal/domain/lending"
)

// IssueLoanRequest is the command to lend a copy to a borrower. Staff either
// scan a specific copy or name the book and let the desk pick any available
// copy; exactly one of CopyID and BookID must be set.
type IssueLoanRequest struct {
	BorrowerID uuid.UUID `json:"borrower_id" binding:"required"`
	CopyID     uuid.UUID `json:"copy_id"`
	BookID     uuid.UUID `json:"book_id"`
	DueDate    time.Time `json:"due_date" binding:"required"`
}

// MarkLostRequest carries the resolved replacement fine, if any. When the
// amount is absent the service consults the market price resolver; if that
// also fails the caller must supply the amount manually.
type MarkLostRequest struct {
	PenaltyAmount *decimal.Decimal `json:"penalty_amount"`
}

// SettlePaymentRequest is the command to settle all penalties on a loan
type SettlePaymentRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	ORNumber string          `json:"or_number" binding:"required"`
}

// LoanResponse is the read model for a loan
type LoanResponse struct {
	ID              uuid.UUID  `json:"id"`
	BorrowerID      uuid.UUID  `json:"borrower_id"`
	CopyID          uuid.UUID  `json:"copy_id"`
	BookID          uuid.UUID  `json:"book_id"`
	TransactionDate time.Time  `json:"transaction_date"`
	DueDate         time.Time  `json:"due_date"`
	ReturnDate      *time.Time `json:"return_date,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToLoanResponse maps a loan to its read model
func ToLoanResponse(loan *lending.Loan) LoanResponse {
	return LoanResponse{
		ID:              loan.ID,
		BorrowerID:      loan.BorrowerID,
		CopyID:          loan.CopyID,
		BookID:          loan.BookID,
		TransactionDate: loan.TransactionDate,
		DueDate:         loan.DueDate,
		ReturnDate:      loan.ReturnDate,
		Status:          loan.Status.String(),
		CreatedAt:       loan.CreatedAt,
		UpdatedAt:       loan.UpdatedAt,
	}
}

// PenaltyResponse is the read model for a penalty
type PenaltyResponse struct {
	ID        uuid.UUID       `json:"id"`
	LoanID    uuid.UUID       `json:"loan_id"`
	Reason    string          `json:"reason"`
	Amount    decimal.Decimal `json:"amount"`
	IsPaid    bool            `json:"is_paid"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToPenaltyResponse maps a penalty to its read model
func ToPenaltyResponse(p *lending.Penalty) PenaltyResponse {
	return PenaltyResponse{
		ID:        p.ID,
		LoanID:    p.LoanID,
		Reason:    p.Reason.String(),
		Amount:    p.Amount,
		IsPaid:    p.IsPaid,
		CreatedAt: p.CreatedAt,
	}
}

// PaymentResponse is the read model for a settlement receipt
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	LoanID      uuid.UUID       `json:"loan_id"`
	BorrowerID  uuid.UUID       `json:"borrower_id"`
	Amount      decimal.Decimal `json:"amount"`
	ORNumber    string          `json:"or_number"`
	PaymentDate time.Time       `json:"payment_date"`
}

// ToPaymentResponse maps a payment to its read model
func ToPaymentResponse(p *lending.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		LoanID:      p.LoanID,
		BorrowerID:  p.BorrowerID,
		Amount:      p.Amount,
		ORNumber:    p.ORNumber,
		PaymentDate: p.PaymentDate,
	}
}

// OverdueResponse is the read model for an overdue counter
type OverdueResponse struct {
	ID          uuid.UUID `json:"id"`
	LoanID      uuid.UUID `json:"loan_id"`
	OverdueDays int       `json:"overdue_days"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToOverdueResponse maps an overdue counter to its read model
func ToOverdueResponse(o *lending.Overdue) OverdueResponse {
	return OverdueResponse{
		ID:          o.ID,
		LoanID:      o.LoanID,
		OverdueDays: o.OverdueDays,
		CreatedAt:   o.CreatedAt,
	}
}
