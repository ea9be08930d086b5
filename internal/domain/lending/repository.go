package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanRepository defines the persistence interface for loans
type LoanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Loan, error)
	FindByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*Loan, error)
	// FindDueForScan returns unreturned loans at least one full day past
	// due, excluding terminal and completed statuses.
	FindDueForScan(ctx context.Context, asOf time.Time) ([]*Loan, error)
	// CountActiveByBorrower counts unreturned loans in ACTIVE status only;
	// overdue loans do not count against the borrowing limit.
	CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error)
	// ExistsUnreturnedForBook checks whether the borrower already holds any
	// unreturned active loan on any copy of the given book.
	ExistsUnreturnedForBook(ctx context.Context, borrowerID, bookID uuid.UUID) (bool, error)
	// CountLostOrDamagedByBorrower counts the borrower's historical loans
	// that ended lost or damaged.
	CountLostOrDamagedByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status LoanStatus) (int64, error)
	CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CountReturnedBetween(ctx context.Context, from, to time.Time) (int64, error)
	List(ctx context.Context, offset, limit int) ([]*Loan, int64, error)
	ListByStatus(ctx context.Context, status LoanStatus, offset, limit int) ([]*Loan, int64, error)
	Save(ctx context.Context, loan *Loan) error
}

// OverdueRepository defines the persistence interface for overdue counters
type OverdueRepository interface {
	FindByLoan(ctx context.Context, loanID uuid.UUID) (*Overdue, error)
	List(ctx context.Context, offset, limit int) ([]*Overdue, int64, error)
	Save(ctx context.Context, overdue *Overdue) error
}

// PenaltyRepository defines the persistence interface for penalties
type PenaltyRepository interface {
	FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*Penalty, error)
	FindByLoanAndReason(ctx context.Context, loanID uuid.UUID, reason PenaltyReason) (*Penalty, error)
	FindUnpaidByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*Penalty, error)
	SumUnpaid(ctx context.Context) (decimal.Decimal, error)
	Save(ctx context.Context, penalty *Penalty) error
}

// PaymentRepository defines the persistence interface for payment receipts
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*Payment, error)
	SumCollectedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	List(ctx context.Context, offset, limit int) ([]*Payment, int64, error)
	Save(ctx context.Context, payment *Payment) error
}
