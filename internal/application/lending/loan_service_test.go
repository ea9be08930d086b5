package lending

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shelfmaster/backend/internal/domain/catalog"
	"github.com/shelfmaster/backend/internal/domain/identity"
	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

type loanServiceFixture struct {
	loanRepo    *MockLoanRepository
	penaltyRepo *MockPenaltyRepository
	paymentRepo *MockPaymentRepository
	copyRepo    *MockCopyRepository
	bookRepo    *MockBookRepository
	userRepo    *MockUserRepository
	auditRepo   *MockAuditRepository
	resolver    *MockMarketPriceResolver
	clock       shared.FixedClock
	service     *LoanService
}

func newLoanServiceFixture(now time.Time) *loanServiceFixture {
	f := &loanServiceFixture{
		loanRepo:    new(MockLoanRepository),
		penaltyRepo: new(MockPenaltyRepository),
		paymentRepo: new(MockPaymentRepository),
		copyRepo:    new(MockCopyRepository),
		bookRepo:    new(MockBookRepository),
		userRepo:    new(MockUserRepository),
		auditRepo:   new(MockAuditRepository),
		resolver:    new(MockMarketPriceResolver),
		clock:       shared.FixedClock{Instant: now},
	}
	f.service = NewLoanService(
		f.loanRepo, f.penaltyRepo, f.paymentRepo,
		f.copyRepo, f.bookRepo, f.userRepo,
		f.auditRepo, f.resolver, f.clock, zap.NewNop(),
	)
	f.auditRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func activeBorrower(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("jdoe", "jdoe@example.com", "s3cret-pass", "J. Doe", identity.RoleBorrower)
	require.NoError(t, err)
	return user
}

func availableCopy(t *testing.T, bookID uuid.UUID) *catalog.Copy {
	t.Helper()
	copy, err := catalog.NewCopy(bookID, "ACQ000001-C001")
	require.NoError(t, err)
	return copy
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestLoanService_Issue(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, 7)
	actorID := uuid.New()

	t.Run("issues a loan and marks the copy borrowed", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		borrower := activeBorrower(t)
		bookID := uuid.New()
		copy := availableCopy(t, bookID)

		f.userRepo.On("FindByID", mock.Anything, borrower.ID).Return(borrower, nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
		f.loanRepo.On("ExistsUnreturnedForBook", mock.Anything, borrower.ID, bookID).Return(false, nil)
		f.loanRepo.On("CountActiveByBorrower", mock.Anything, borrower.ID).Return(int64(1), nil)
		f.loanRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.copyRepo.On("Save", mock.Anything, copy).Return(nil)

		resp, err := f.service.Issue(context.Background(), actorID, IssueLoanRequest{
			BorrowerID: borrower.ID, CopyID: copy.ID, DueDate: due,
		})

		require.NoError(t, err)
		assert.Equal(t, lending.LoanStatusActive.String(), resp.Status)
		assert.Equal(t, due, resp.DueDate)
		assert.Equal(t, catalog.CopyStatusBorrowed, copy.Status)
		f.loanRepo.AssertExpectations(t)
	})

	t.Run("picks an available copy when issuing by book", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		borrower := activeBorrower(t)
		bookID := uuid.New()
		copy := availableCopy(t, bookID)

		f.userRepo.On("FindByID", mock.Anything, borrower.ID).Return(borrower, nil)
		f.copyRepo.On("FindAvailableByBook", mock.Anything, bookID).Return(copy, nil)
		f.loanRepo.On("ExistsUnreturnedForBook", mock.Anything, borrower.ID, bookID).Return(false, nil)
		f.loanRepo.On("CountActiveByBorrower", mock.Anything, borrower.ID).Return(int64(0), nil)
		f.loanRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.copyRepo.On("Save", mock.Anything, copy).Return(nil)

		resp, err := f.service.Issue(context.Background(), actorID, IssueLoanRequest{
			BorrowerID: borrower.ID, BookID: bookID, DueDate: due,
		})

		require.NoError(t, err)
		assert.Equal(t, copy.ID, resp.CopyID)
	})

	t.Run("fails when no copy of the book is available", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		borrower := activeBorrower(t)
		bookID := uuid.New()

		f.userRepo.On("FindByID", mock.Anything, borrower.ID).Return(borrower, nil)
		f.copyRepo.On("FindAvailableByBook", mock.Anything, bookID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Issue(context.Background(), actorID, IssueLoanRequest{
			BorrowerID: borrower.ID, BookID: bookID, DueDate: due,
		})

		assertDomainCode(t, err, shared.CodeNotFound)
	})

	t.Run("requires a copy or a book", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		borrower := activeBorrower(t)

		f.userRepo.On("FindByID", mock.Anything, borrower.ID).Return(borrower, nil)

		_, err := f.service.Issue(context.Background(), actorID, IssueLoanRequest{
			BorrowerID: borrower.ID, DueDate: due,
		})

		assertDomainCode(t, err, shared.CodeInvalidInput)
	})

	t.Run("rejects an inactive borrower", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		borrower := activeBorrower(t)
		require.NoError(t, borrower.Deactivate(now))

		f.userRepo.On("FindByID", mock.Anything, borrower.ID).Return(borrower, nil)

		_, err := f.service.Issue(context.Background(), actorID, IssueLoanRequest{
			BorrowerID: borrower.ID, CopyID: uuid.New(), DueDate: due,
		})

		assertDomainCode(t, err, shared.CodeInvalidInput)
	})

	t.Run("rejects a duplicate of the same book across copies", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		borrower := activeBorrower(t)
		bookID := uuid.New()
		copy := availableCopy(t, bookID)

		f.userRepo.On("FindByID", mock.Anything, borrower.ID).Return(borrower, nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
		f.loanRepo.On("ExistsUnreturnedForBook", mock.Anything, borrower.ID, bookID).Return(true, nil)

		_, err := f.service.Issue(context.Background(), actorID, IssueLoanRequest{
			BorrowerID: borrower.ID, CopyID: copy.ID, DueDate: due,
		})

		assertDomainCode(t, err, shared.CodePolicyViolation)
		f.loanRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects issuance beyond the borrowing limit", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		borrower := activeBorrower(t)
		bookID := uuid.New()
		copy := availableCopy(t, bookID)

		f.userRepo.On("FindByID", mock.Anything, borrower.ID).Return(borrower, nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
		f.loanRepo.On("ExistsUnreturnedForBook", mock.Anything, borrower.ID, bookID).Return(false, nil)
		f.loanRepo.On("CountActiveByBorrower", mock.Anything, borrower.ID).Return(int64(3), nil)

		_, err := f.service.Issue(context.Background(), actorID, IssueLoanRequest{
			BorrowerID: borrower.ID, CopyID: copy.ID, DueDate: due,
		})

		assertDomainCode(t, err, shared.CodePolicyViolation)
	})

	t.Run("rejects a copy that is not available", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		borrower := activeBorrower(t)
		copy := availableCopy(t, uuid.New())
		require.NoError(t, copy.SetStatus(catalog.CopyStatusBorrowed, now))

		f.userRepo.On("FindByID", mock.Anything, borrower.ID).Return(borrower, nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)

		_, err := f.service.Issue(context.Background(), actorID, IssueLoanRequest{
			BorrowerID: borrower.ID, CopyID: copy.ID, DueDate: due,
		})

		assertDomainCode(t, err, shared.CodeInvalidInput)
	})
}

func issuedLoan(t *testing.T, borrowerID uuid.UUID, copy *catalog.Copy, due, now time.Time) *lending.Loan {
	t.Helper()
	loan, err := lending.NewLoan(borrowerID, copy.ID, copy.BookID, due, now)
	require.NoError(t, err)
	require.NoError(t, copy.SetStatus(catalog.CopyStatusBorrowed, now))
	loan.ClearDomainEvents()
	return loan
}

func TestLoanService_Return(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	actorID := uuid.New()

	t.Run("completes the loan and frees the copy", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 2), now.AddDate(0, 0, -3))

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
		f.penaltyRepo.On("FindByLoan", mock.Anything, loan.ID).Return([]*lending.Penalty{}, nil)
		f.loanRepo.On("Save", mock.Anything, loan).Return(nil)
		f.copyRepo.On("Save", mock.Anything, copy).Return(nil)

		resp, err := f.service.Return(context.Background(), actorID, loan.ID)

		require.NoError(t, err)
		assert.Equal(t, lending.LoanStatusCompleted.String(), resp.Status)
		require.NotNil(t, resp.ReturnDate)
		assert.Equal(t, now, *resp.ReturnDate)
		assert.Equal(t, catalog.CopyStatusAvailable, copy.Status)
	})

	t.Run("keeps the copy out of circulation while a lost penalty is open", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 2), now.AddDate(0, 0, -3))
		openLost, err := lending.NewPenalty(loan.ID, lending.PenaltyReasonLost,
			valueobject.NewMoneyPHPFromInt(500), now)
		require.NoError(t, err)

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
		f.penaltyRepo.On("FindByLoan", mock.Anything, loan.ID).Return([]*lending.Penalty{openLost}, nil)
		f.loanRepo.On("Save", mock.Anything, loan).Return(nil)
		f.copyRepo.On("Save", mock.Anything, copy).Return(nil)

		_, err = f.service.Return(context.Background(), actorID, loan.ID)

		require.NoError(t, err)
		assert.Equal(t, catalog.CopyStatusBorrowed, copy.Status)
	})

	t.Run("rejects a double return", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 2), now.AddDate(0, 0, -3))
		require.NoError(t, loan.Return(now.AddDate(0, 0, -1)))

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)

		_, err := f.service.Return(context.Background(), actorID, loan.ID)

		assertDomainCode(t, err, shared.CodeConflict)
		f.loanRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLoanService_Renew(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	actorID := uuid.New()

	t.Run("extends the due date by two days", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 1), now.AddDate(0, 0, -3))

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.loanRepo.On("CountLostOrDamagedByBorrower", mock.Anything, loan.BorrowerID).Return(int64(0), nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
		f.loanRepo.On("Save", mock.Anything, loan).Return(nil)
		f.copyRepo.On("Save", mock.Anything, copy).Return(nil)

		resp, err := f.service.Renew(context.Background(), actorID, loan.ID)

		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, 2), resp.DueDate)
		assert.Equal(t, lending.LoanStatusActive.String(), resp.Status)
	})

	t.Run("cancels renewal when the due date has passed", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, -1), now.AddDate(0, 0, -5))
		originalDue := loan.DueDate

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.loanRepo.On("CountLostOrDamagedByBorrower", mock.Anything, loan.BorrowerID).Return(int64(0), nil)

		_, err := f.service.Renew(context.Background(), actorID, loan.ID)

		assertDomainCode(t, err, shared.CodePolicyViolation)
		assert.Equal(t, originalDue, loan.DueDate)
		f.loanRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("refuses renewal after three lost or damaged loans", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 1), now.AddDate(0, 0, -3))

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.loanRepo.On("CountLostOrDamagedByBorrower", mock.Anything, loan.BorrowerID).Return(int64(3), nil)

		_, err := f.service.Renew(context.Background(), actorID, loan.ID)

		assertDomainCode(t, err, shared.CodePolicyViolation)
	})
}

func TestLoanService_MarkDamaged(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	actorID := uuid.New()

	f := newLoanServiceFixture(now)
	copy := availableCopy(t, uuid.New())
	loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 2), now.AddDate(0, 0, -3))

	f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
	f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
	f.penaltyRepo.On("FindByLoanAndReason", mock.Anything, loan.ID, lending.PenaltyReasonDamaged).
		Return(nil, shared.ErrNotFound)
	f.penaltyRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *lending.Penalty) bool {
		return p.Reason == lending.PenaltyReasonDamaged && p.Amount.Equal(decimal.NewFromInt(300)) && !p.IsPaid
	})).Return(nil)
	f.loanRepo.On("Save", mock.Anything, loan).Return(nil)
	f.copyRepo.On("Save", mock.Anything, copy).Return(nil)

	resp, err := f.service.MarkDamaged(context.Background(), actorID, loan.ID)

	require.NoError(t, err)
	assert.Equal(t, lending.LoanStatusDamaged.String(), resp.Status)
	assert.Equal(t, catalog.CopyStatusDamaged, copy.Status)
	f.penaltyRepo.AssertExpectations(t)
}

func TestLoanService_MarkLost(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	actorID := uuid.New()

	t.Run("uses the manually entered fine", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 2), now.AddDate(0, 0, -3))
		manual := decimal.NewFromInt(850)

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
		f.penaltyRepo.On("FindByLoanAndReason", mock.Anything, loan.ID, lending.PenaltyReasonLost).
			Return(nil, shared.ErrNotFound)
		f.penaltyRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *lending.Penalty) bool {
			return p.Reason == lending.PenaltyReasonLost && p.Amount.Equal(manual)
		})).Return(nil)
		f.loanRepo.On("Save", mock.Anything, loan).Return(nil)
		f.copyRepo.On("Save", mock.Anything, copy).Return(nil)

		resp, err := f.service.MarkLost(context.Background(), actorID, loan.ID, MarkLostRequest{PenaltyAmount: &manual})

		require.NoError(t, err)
		assert.Equal(t, lending.LoanStatusLost.String(), resp.Status)
		assert.Equal(t, catalog.CopyStatusLost, copy.Status)
		f.resolver.AssertNotCalled(t, "ResolveLostFine", mock.Anything, mock.Anything)
	})

	t.Run("falls back to the market price resolver", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		bookID := uuid.New()
		copy := availableCopy(t, bookID)
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 2), now.AddDate(0, 0, -3))
		book, err := catalog.NewBook("The Pragmatic Programmer", "9780135957059", "Hunt", "Addison-Wesley", "Software", 2019)
		require.NoError(t, err)
		resolved := valueobject.NewMoneyPHPFromInt(1240)

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.bookRepo.On("FindByID", mock.Anything, bookID).Return(book, nil)
		f.resolver.On("ResolveLostFine", mock.Anything, "9780135957059").Return(&resolved, nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
		f.penaltyRepo.On("FindByLoanAndReason", mock.Anything, loan.ID, lending.PenaltyReasonLost).
			Return(nil, shared.ErrNotFound)
		f.penaltyRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *lending.Penalty) bool {
			return p.Amount.Equal(decimal.NewFromInt(1240))
		})).Return(nil)
		f.loanRepo.On("Save", mock.Anything, loan).Return(nil)
		f.copyRepo.On("Save", mock.Anything, copy).Return(nil)

		_, err = f.service.MarkLost(context.Background(), actorID, loan.ID, MarkLostRequest{})

		require.NoError(t, err)
		f.resolver.AssertExpectations(t)
	})

	t.Run("requires manual entry when the price cannot be resolved", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		bookID := uuid.New()
		copy := availableCopy(t, bookID)
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 2), now.AddDate(0, 0, -3))
		book, err := catalog.NewBook("Some Rare Title", "9780000000001", "Unknown", "Unknown", "Fiction", 1950)
		require.NoError(t, err)

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.bookRepo.On("FindByID", mock.Anything, bookID).Return(book, nil)
		f.resolver.On("ResolveLostFine", mock.Anything, "9780000000001").Return(nil, nil)

		_, err = f.service.MarkLost(context.Background(), actorID, loan.ID, MarkLostRequest{})

		assertDomainCode(t, err, shared.CodeInvalidInput)
		assert.Equal(t, lending.LoanStatusActive, loan.Status)
	})
}

func TestLoanService_SettlePayment(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	actorID := uuid.New()

	t.Run("completes the loan and frees the copy when only overdue penalties exist", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, -3), now.AddDate(0, 0, -10))
		require.NoError(t, loan.MarkOverdue(now))
		loan.ClearDomainEvents()
		require.NoError(t, copy.SetStatus(catalog.CopyStatusOverdue, now))
		penalty, err := lending.NewPenalty(loan.ID, lending.PenaltyReasonOverdue,
			valueobject.NewMoneyPHPFromInt(75), now)
		require.NoError(t, err)

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.penaltyRepo.On("FindByLoan", mock.Anything, loan.ID).Return([]*lending.Penalty{penalty}, nil)
		f.penaltyRepo.On("Save", mock.Anything, penalty).Return(nil)
		f.paymentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.copyRepo.On("FindByID", mock.Anything, copy.ID).Return(copy, nil)
		f.loanRepo.On("Save", mock.Anything, loan).Return(nil)
		f.copyRepo.On("Save", mock.Anything, copy).Return(nil)

		resp, err := f.service.SettlePayment(context.Background(), actorID, loan.ID, SettlePaymentRequest{
			Amount: decimal.NewFromInt(75), ORNumber: "OR-2025-0001",
		})

		require.NoError(t, err)
		assert.Equal(t, "OR-2025-0001", resp.ORNumber)
		assert.True(t, penalty.IsPaid)
		assert.Equal(t, lending.LoanStatusCompleted, loan.Status)
		assert.Equal(t, catalog.CopyStatusAvailable, copy.Status)
	})

	t.Run("keeps a lost loan terminal and its copy off the shelf", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 2), now.AddDate(0, 0, -3))
		require.NoError(t, loan.MarkLost(now))
		loan.ClearDomainEvents()
		require.NoError(t, copy.SetStatus(catalog.CopyStatusLost, now))
		penalty, err := lending.NewPenalty(loan.ID, lending.PenaltyReasonLost,
			valueobject.NewMoneyPHPFromInt(900), now)
		require.NoError(t, err)

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.penaltyRepo.On("FindByLoan", mock.Anything, loan.ID).Return([]*lending.Penalty{penalty}, nil)
		f.penaltyRepo.On("Save", mock.Anything, penalty).Return(nil)
		f.paymentRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err = f.service.SettlePayment(context.Background(), actorID, loan.ID, SettlePaymentRequest{
			Amount: decimal.NewFromInt(900), ORNumber: "OR-2025-0002",
		})

		require.NoError(t, err)
		assert.True(t, penalty.IsPaid)
		assert.Equal(t, lending.LoanStatusLost, loan.Status)
		assert.Equal(t, catalog.CopyStatusLost, copy.Status)
		f.copyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects settlement when the loan has no penalties", func(t *testing.T) {
		f := newLoanServiceFixture(now)
		copy := availableCopy(t, uuid.New())
		loan := issuedLoan(t, uuid.New(), copy, now.AddDate(0, 0, 2), now.AddDate(0, 0, -3))

		f.loanRepo.On("FindByID", mock.Anything, loan.ID).Return(loan, nil)
		f.penaltyRepo.On("FindByLoan", mock.Anything, loan.ID).Return([]*lending.Penalty{}, nil)

		_, err := f.service.SettlePayment(context.Background(), actorID, loan.ID, SettlePaymentRequest{
			Amount: decimal.NewFromInt(10), ORNumber: "OR-2025-0003",
		})

		assertDomainCode(t, err, shared.CodeInvalidState)
	})
}
