package lending

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

// LoanStatus represents the status of a loan
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "ACTIVE"
	LoanStatusOverdue   LoanStatus = "OVERDUE"
	LoanStatusCompleted LoanStatus = "COMPLETED"
	LoanStatusLost      LoanStatus = "LOST"
	LoanStatusDamaged   LoanStatus = "DAMAGED"
)

// IsValid checks if the status is a valid LoanStatus
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusActive, LoanStatusOverdue, LoanStatusCompleted, LoanStatusLost, LoanStatusDamaged:
		return true
	}
	return false
}

// String returns the string representation of LoanStatus
func (s LoanStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further lifecycle transitions are possible
func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusLost || s == LoanStatusDamaged
}

// CanTransitionTo checks if the status can transition to the target status.
// This is the single transition table for the loan lifecycle; every staff
// action and the overdue sweep consult it rather than re-deriving the rules.
func (s LoanStatus) CanTransitionTo(target LoanStatus) bool {
	switch s {
	case LoanStatusActive:
		return target == LoanStatusOverdue || target == LoanStatusCompleted ||
			target == LoanStatusLost || target == LoanStatusDamaged
	case LoanStatusOverdue:
		return target == LoanStatusCompleted || target == LoanStatusLost || target == LoanStatusDamaged
	case LoanStatusCompleted:
		// A completed loan may only be reopened by a renewal
		return target == LoanStatusActive
	case LoanStatusLost, LoanStatusDamaged:
		return false
	}
	return false
}

// RenewalPeriodDays is the fixed extension granted by a renewal
const RenewalPeriodDays = 2

// Loan represents one borrowing episode linking a borrower to a copy.
// Loans are never physically deleted.
type Loan struct {
	shared.BaseAggregateRoot
	BorrowerID      uuid.UUID
	CopyID          uuid.UUID
	BookID          uuid.UUID
	TransactionDate time.Time
	DueDate         time.Time
	ReturnDate      *time.Time
	Status          LoanStatus
}

// NewLoan issues a new loan. The due date must not be in the past relative
// to the supplied issue time (compared at day granularity).
func NewLoan(borrowerID, copyID, bookID uuid.UUID, dueDate, now time.Time) (*Loan, error) {
	if borrowerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Borrower ID cannot be empty")
	}
	if copyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Copy ID cannot be empty")
	}
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Book ID cannot be empty")
	}
	if dueDate.Before(startOfDay(now)) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Due date cannot be earlier than today")
	}

	loan := &Loan{
		BaseAggregateRoot: shared.BaseAggregateRoot{BaseEntity: shared.NewBaseEntityAt(now)},
		BorrowerID:        borrowerID,
		CopyID:            copyID,
		BookID:            bookID,
		TransactionDate:   now,
		DueDate:           dueDate,
		Status:            LoanStatusActive,
	}
	loan.AddDomainEvent(NewLoanIssuedEvent(loan))
	return loan, nil
}

// Return completes the loan. Returning twice is a conflict.
func (l *Loan) Return(now time.Time) error {
	if l.ReturnDate != nil {
		return shared.NewDomainError(shared.CodeConflict, "The book has already been returned")
	}
	if !l.Status.CanTransitionTo(LoanStatusCompleted) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot return a loan in %s status", l.Status))
	}
	l.ReturnDate = &now
	l.Status = LoanStatusCompleted
	l.UpdatedAt = now
	l.AddDomainEvent(NewLoanReturnedEvent(l))
	return nil
}

// Renew extends the loan by the fixed renewal period. Renewal of a loan whose
// due date has already passed is a policy violation (the renewal intent is
// auto-cancelled); strike-count policy is enforced by the application service.
func (l *Loan) Renew(now time.Time) error {
	if l.Status.IsTerminal() {
		return shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("Cannot renew a loan in %s status", l.Status))
	}
	if l.DueDate.Before(now) {
		return shared.NewDomainError(shared.CodePolicyViolation,
			"The loan is overdue; the renewal has been cancelled")
	}
	l.DueDate = now.AddDate(0, 0, RenewalPeriodDays)
	l.ReturnDate = nil
	l.Status = LoanStatusActive
	l.UpdatedAt = now
	l.AddDomainEvent(NewLoanRenewedEvent(l))
	return nil
}

// MarkOverdue flips an active loan to overdue. Safe to call repeatedly: a
// loan already overdue stays overdue without error (the sweep is level
// triggered, not edge triggered).
func (l *Loan) MarkOverdue(now time.Time) error {
	if l.Status == LoanStatusOverdue {
		return nil
	}
	if !l.Status.CanTransitionTo(LoanStatusOverdue) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot mark a loan in %s status overdue", l.Status))
	}
	l.Status = LoanStatusOverdue
	l.UpdatedAt = now
	l.AddDomainEvent(NewLoanOverdueEvent(l, now))
	return nil
}

// MarkLost records the copy as lost. Terminal.
func (l *Loan) MarkLost(now time.Time) error {
	if !l.Status.CanTransitionTo(LoanStatusLost) {
		return shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("Cannot mark a loan in %s status as lost", l.Status))
	}
	l.Status = LoanStatusLost
	l.UpdatedAt = now
	l.AddDomainEvent(NewLoanMarkedLostEvent(l))
	return nil
}

// MarkDamaged records the copy as damaged. Terminal.
func (l *Loan) MarkDamaged(now time.Time) error {
	if !l.Status.CanTransitionTo(LoanStatusDamaged) {
		return shared.NewDomainError(shared.CodeConflict,
			fmt.Sprintf("Cannot mark a loan in %s status as damaged", l.Status))
	}
	l.Status = LoanStatusDamaged
	l.UpdatedAt = now
	l.AddDomainEvent(NewLoanMarkedDamagedEvent(l))
	return nil
}

// Settle closes out the loan after all penalties are paid. Lost and damaged
// loans keep their terminal status; only the active/overdue ones complete.
func (l *Loan) Settle(now time.Time) {
	if l.Status.IsTerminal() || l.Status == LoanStatusCompleted {
		return
	}
	l.Status = LoanStatusCompleted
	if l.ReturnDate == nil {
		l.ReturnDate = &now
	}
	l.UpdatedAt = now
}

// IsReturned reports whether the copy has come back
func (l *Loan) IsReturned() bool {
	return l.ReturnDate != nil
}

// IsOverdueAsOf reports whether the loan has passed its grace period: the
// sweep picks up loans one full day past due.
func (l *Loan) IsOverdueAsOf(now time.Time) bool {
	return l.ReturnDate == nil &&
		!l.Status.IsTerminal() && l.Status != LoanStatusCompleted &&
		!l.DueDate.AddDate(0, 0, 1).After(now)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
