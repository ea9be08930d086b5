package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
)

type mockLoanRepository struct {
	mock.Mock
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Loan), args.Error(1)
}

func (m *mockLoanRepository) FindByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*lending.Loan, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Loan), args.Error(1)
}

func (m *mockLoanRepository) FindDueForScan(ctx context.Context, asOf time.Time) ([]*lending.Loan, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Loan), args.Error(1)
}

func (m *mockLoanRepository) CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLoanRepository) ExistsUnreturnedForBook(ctx context.Context, borrowerID, bookID uuid.UUID) (bool, error) {
	args := m.Called(ctx, borrowerID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLoanRepository) CountLostOrDamagedByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLoanRepository) CountByStatus(ctx context.Context, status lending.LoanStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLoanRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLoanRepository) CountReturnedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLoanRepository) List(ctx context.Context, offset, limit int) ([]*lending.Loan, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*lending.Loan), args.Get(1).(int64), args.Error(2)
}

func (m *mockLoanRepository) ListByStatus(ctx context.Context, status lending.LoanStatus, offset, limit int) ([]*lending.Loan, int64, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*lending.Loan), args.Get(1).(int64), args.Error(2)
}

func (m *mockLoanRepository) Save(ctx context.Context, loan *lending.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

type mockPenaltyRepository struct {
	mock.Mock
}

func (m *mockPenaltyRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*lending.Penalty, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Penalty), args.Error(1)
}

func (m *mockPenaltyRepository) FindByLoanAndReason(ctx context.Context, loanID uuid.UUID, reason lending.PenaltyReason) (*lending.Penalty, error) {
	args := m.Called(ctx, loanID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Penalty), args.Error(1)
}

func (m *mockPenaltyRepository) FindUnpaidByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*lending.Penalty, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Penalty), args.Error(1)
}

func (m *mockPenaltyRepository) SumUnpaid(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockPenaltyRepository) Save(ctx context.Context, penalty *lending.Penalty) error {
	args := m.Called(ctx, penalty)
	return args.Error(0)
}

type mockPaymentRepository struct {
	mock.Mock
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Payment), args.Error(1)
}

func (m *mockPaymentRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*lending.Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Payment), args.Error(1)
}

func (m *mockPaymentRepository) SumCollectedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockPaymentRepository) List(ctx context.Context, offset, limit int) ([]*lending.Payment, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*lending.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *mockPaymentRepository) Save(ctx context.Context, payment *lending.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func TestReportService_LendingSummary(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("aggregates circulation activity for the period", func(t *testing.T) {
		loanRepo := new(mockLoanRepository)
		penaltyRepo := new(mockPenaltyRepository)
		paymentRepo := new(mockPaymentRepository)
		svc := NewReportService(loanRepo, penaltyRepo, paymentRepo, zap.NewNop())

		loanRepo.On("CountIssuedBetween", mock.Anything, from, to).Return(int64(40), nil)
		loanRepo.On("CountReturnedBetween", mock.Anything, from, to).Return(int64(35), nil)
		loanRepo.On("CountByStatus", mock.Anything, lending.LoanStatusActive).Return(int64(12), nil)
		loanRepo.On("CountByStatus", mock.Anything, lending.LoanStatusOverdue).Return(int64(5), nil)
		loanRepo.On("CountByStatus", mock.Anything, lending.LoanStatusLost).Return(int64(1), nil)
		loanRepo.On("CountByStatus", mock.Anything, lending.LoanStatusDamaged).Return(int64(2), nil)
		penaltyRepo.On("SumUnpaid", mock.Anything).Return(decimal.RequireFromString("425.505"), nil)
		paymentRepo.On("SumCollectedBetween", mock.Anything, from, to).Return(decimal.NewFromInt(700), nil)

		summary, err := svc.LendingSummary(ctx, from, to)

		require.NoError(t, err)
		assert.Equal(t, int64(40), summary.LoansIssued)
		assert.Equal(t, int64(35), summary.LoansReturned)
		assert.Equal(t, int64(12), summary.CurrentlyActive)
		assert.Equal(t, int64(5), summary.CurrentlyOverdue)
		assert.Equal(t, int64(1), summary.LostLoans)
		assert.Equal(t, int64(2), summary.DamagedLoans)
		assert.Equal(t, "425.51", summary.UnpaidPenalties.StringFixed(2))
		assert.Equal(t, "700.00", summary.FinesCollected.StringFixed(2))
	})

	t.Run("rejects an inverted period", func(t *testing.T) {
		svc := NewReportService(new(mockLoanRepository), new(mockPenaltyRepository), new(mockPaymentRepository), zap.NewNop())

		_, err := svc.LendingSummary(ctx, to, from)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeInvalidInput, domainErr.Code)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		loanRepo := new(mockLoanRepository)
		svc := NewReportService(loanRepo, new(mockPenaltyRepository), new(mockPaymentRepository), zap.NewNop())
		loanRepo.On("CountIssuedBetween", mock.Anything, from, to).Return(int64(0), errors.New("connection reset"))

		_, err := svc.LendingSummary(ctx, from, to)

		assert.EqualError(t, err, "connection reset")
	})
}
