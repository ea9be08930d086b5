package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// Overdue is the derived day counter for a loan past its due date.
// At most one exists per loan; the sweep overwrites the counter in place.
type Overdue struct {
	shared.BaseEntity
	LoanID      uuid.UUID
	OverdueDays int
}

// NewOverdue creates the counter record the first time a loan is detected overdue
func NewOverdue(loanID uuid.UUID, days int, now time.Time) (*Overdue, error) {
	if loanID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Loan ID cannot be empty")
	}
	if days < 1 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Overdue days must be at least 1")
	}
	return &Overdue{
		BaseEntity:  shared.NewBaseEntityAt(now),
		LoanID:      loanID,
		OverdueDays: days,
	}, nil
}

// Refresh overwrites the counter with the latest computed value
func (o *Overdue) Refresh(days int, now time.Time) {
	if days < 1 {
		days = 1
	}
	o.OverdueDays = days
	o.UpdatedAt = now
}
