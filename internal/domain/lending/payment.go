package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

// Payment is an immutable receipt for settling the penalties of a loan.
// Once recorded it is never modified.
type Payment struct {
	shared.BaseEntity
	LoanID      uuid.UUID
	BorrowerID  uuid.UUID
	Amount      decimal.Decimal
	ORNumber    string
	PaymentDate time.Time
}

// NewPayment records a settlement receipt against a loan
func NewPayment(loanID, borrowerID uuid.UUID, amount valueobject.Money, orNumber string, now time.Time) (*Payment, error) {
	if loanID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Loan ID cannot be empty")
	}
	if borrowerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Borrower ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Payment amount must be positive")
	}
	if orNumber == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Official receipt number cannot be empty")
	}
	return &Payment{
		BaseEntity:  shared.NewBaseEntityAt(now),
		LoanID:      loanID,
		BorrowerID:  borrowerID,
		Amount:      amount.Amount().Round(2),
		ORNumber:    orNumber,
		PaymentDate: now,
	}, nil
}

// GetAmount returns the payment amount as money
func (p *Payment) GetAmount() valueobject.Money {
	return valueobject.NewMoneyPHP(p.Amount)
}
