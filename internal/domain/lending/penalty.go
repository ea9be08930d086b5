package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

// PenaltyReason classifies why a fine was levied
type PenaltyReason string

const (
	PenaltyReasonOverdue PenaltyReason = "OVERDUE"
	PenaltyReasonLost    PenaltyReason = "LOST"
	PenaltyReasonDamaged PenaltyReason = "DAMAGED"
)

// IsValid checks if the reason is a valid PenaltyReason
func (r PenaltyReason) IsValid() bool {
	switch r {
	case PenaltyReasonOverdue, PenaltyReasonLost, PenaltyReasonDamaged:
		return true
	}
	return false
}

// String returns the string representation of PenaltyReason
func (r PenaltyReason) String() string {
	return string(r)
}

// Penalty is a financial obligation attached to a loan, keyed by
// (LoanID, Reason). The amount is a derived value: the sweep and the
// lost/damaged transitions overwrite it, never increment it, and never
// touch IsPaid.
type Penalty struct {
	shared.BaseEntity
	LoanID uuid.UUID
	Reason PenaltyReason
	Amount decimal.Decimal
	IsPaid bool
}

// NewPenalty creates an unpaid penalty for a loan
func NewPenalty(loanID uuid.UUID, reason PenaltyReason, amount valueobject.Money, now time.Time) (*Penalty, error) {
	if loanID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Loan ID cannot be empty")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Invalid penalty reason")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Penalty amount cannot be negative")
	}
	return &Penalty{
		BaseEntity: shared.NewBaseEntityAt(now),
		LoanID:     loanID,
		Reason:     reason,
		Amount:     amount.Amount(),
		IsPaid:     false,
	}, nil
}

// Reassess overwrites the amount with a freshly computed value.
// Payment state is left untouched.
func (p *Penalty) Reassess(amount valueobject.Money, now time.Time) {
	p.Amount = amount.Amount().Round(2)
	p.UpdatedAt = now
}

// MarkPaid settles the penalty. Flipping is one way.
func (p *Penalty) MarkPaid(now time.Time) {
	if p.IsPaid {
		return
	}
	p.IsPaid = true
	p.UpdatedAt = now
}

// GetAmount returns the penalty amount as money
func (p *Penalty) GetAmount() valueobject.Money {
	return valueobject.NewMoneyPHP(p.Amount)
}
