package lending

import (
	"time"

	"github.com/google/uuid"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// Event type constants for the lending context
const (
	EventTypeLoanIssued        = "lending.loan_issued"
	EventTypeLoanReturned      = "lending.loan_returned"
	EventTypeLoanRenewed       = "lending.loan_renewed"
	EventTypeLoanOverdue       = "lending.loan_overdue"
	EventTypeLoanMarkedLost    = "lending.loan_marked_lost"
	EventTypeLoanMarkedDamaged = "lending.loan_marked_damaged"
	EventTypePenaltySettled    = "lending.penalty_settled"
)

// LoanIssuedEvent is raised when a copy leaves the shelf
type LoanIssuedEvent struct {
	shared.BaseDomainEvent
	BorrowerID uuid.UUID `json:"borrower_id"`
	CopyID     uuid.UUID `json:"copy_id"`
	DueDate    time.Time `json:"due_date"`
}

// NewLoanIssuedEvent creates a LoanIssuedEvent
func NewLoanIssuedEvent(loan *Loan) *LoanIssuedEvent {
	return &LoanIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoanIssued, loan.ID, "Loan"),
		BorrowerID:      loan.BorrowerID,
		CopyID:          loan.CopyID,
		DueDate:         loan.DueDate,
	}
}

// LoanReturnedEvent is raised when the copy comes back
type LoanReturnedEvent struct {
	shared.BaseDomainEvent
	BorrowerID uuid.UUID `json:"borrower_id"`
	CopyID     uuid.UUID `json:"copy_id"`
}

// NewLoanReturnedEvent creates a LoanReturnedEvent
func NewLoanReturnedEvent(loan *Loan) *LoanReturnedEvent {
	return &LoanReturnedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoanReturned, loan.ID, "Loan"),
		BorrowerID:      loan.BorrowerID,
		CopyID:          loan.CopyID,
	}
}

// LoanRenewedEvent is raised when the due date is extended
type LoanRenewedEvent struct {
	shared.BaseDomainEvent
	BorrowerID uuid.UUID `json:"borrower_id"`
	NewDueDate time.Time `json:"new_due_date"`
}

// NewLoanRenewedEvent creates a LoanRenewedEvent
func NewLoanRenewedEvent(loan *Loan) *LoanRenewedEvent {
	return &LoanRenewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoanRenewed, loan.ID, "Loan"),
		BorrowerID:      loan.BorrowerID,
		NewDueDate:      loan.DueDate,
	}
}

// LoanOverdueEvent is raised the first time a sweep finds a loan past due.
// Notification handlers use it to send overdue reminders.
type LoanOverdueEvent struct {
	shared.BaseDomainEvent
	BorrowerID uuid.UUID `json:"borrower_id"`
	CopyID     uuid.UUID `json:"copy_id"`
	DueDate    time.Time `json:"due_date"`
	DetectedAt time.Time `json:"detected_at"`
}

// NewLoanOverdueEvent creates a LoanOverdueEvent
func NewLoanOverdueEvent(loan *Loan, detectedAt time.Time) *LoanOverdueEvent {
	return &LoanOverdueEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoanOverdue, loan.ID, "Loan"),
		BorrowerID:      loan.BorrowerID,
		CopyID:          loan.CopyID,
		DueDate:         loan.DueDate,
		DetectedAt:      detectedAt,
	}
}

// LoanMarkedLostEvent is raised when a copy is reported lost
type LoanMarkedLostEvent struct {
	shared.BaseDomainEvent
	BorrowerID uuid.UUID `json:"borrower_id"`
	CopyID     uuid.UUID `json:"copy_id"`
}

// NewLoanMarkedLostEvent creates a LoanMarkedLostEvent
func NewLoanMarkedLostEvent(loan *Loan) *LoanMarkedLostEvent {
	return &LoanMarkedLostEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoanMarkedLost, loan.ID, "Loan"),
		BorrowerID:      loan.BorrowerID,
		CopyID:          loan.CopyID,
	}
}

// LoanMarkedDamagedEvent is raised when a copy is reported damaged
type LoanMarkedDamagedEvent struct {
	shared.BaseDomainEvent
	BorrowerID uuid.UUID `json:"borrower_id"`
	CopyID     uuid.UUID `json:"copy_id"`
}

// NewLoanMarkedDamagedEvent creates a LoanMarkedDamagedEvent
func NewLoanMarkedDamagedEvent(loan *Loan) *LoanMarkedDamagedEvent {
	return &LoanMarkedDamagedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoanMarkedDamaged, loan.ID, "Loan"),
		BorrowerID:      loan.BorrowerID,
		CopyID:          loan.CopyID,
	}
}

// PenaltySettledEvent is raised when every penalty on a loan has been paid
type PenaltySettledEvent struct {
	shared.BaseDomainEvent
	BorrowerID uuid.UUID `json:"borrower_id"`
	ORNumber   string    `json:"or_number"`
}

// NewPenaltySettledEvent creates a PenaltySettledEvent
func NewPenaltySettledEvent(loan *Loan, orNumber string) *PenaltySettledEvent {
	return &PenaltySettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePenaltySettled, loan.ID, "Loan"),
		BorrowerID:      loan.BorrowerID,
		ORNumber:        orNumber,
	}
}
