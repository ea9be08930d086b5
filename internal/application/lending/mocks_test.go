package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/shelfmaster/backend/internal/domain/audit"
	"github.com/shelfmaster/backend/internal/domain/catalog"
	"github.com/shelfmaster/backend/internal/domain/identity"
	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/domain/shared/valueobject"
)

// MockLoanRepository is a mock implementation of lending.LoanRepository
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*lending.Loan, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindDueForScan(ctx context.Context, asOf time.Time) ([]*lending.Loan, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Loan), args.Error(1)
}

func (m *MockLoanRepository) CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) ExistsUnreturnedForBook(ctx context.Context, borrowerID, bookID uuid.UUID) (bool, error) {
	args := m.Called(ctx, borrowerID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoanRepository) CountLostOrDamagedByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) CountByStatus(ctx context.Context, status lending.LoanStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) CountReturnedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLoanRepository) List(ctx context.Context, offset, limit int) ([]*lending.Loan, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*lending.Loan), args.Get(1).(int64), args.Error(2)
}

func (m *MockLoanRepository) ListByStatus(ctx context.Context, status lending.LoanStatus, offset, limit int) ([]*lending.Loan, int64, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*lending.Loan), args.Get(1).(int64), args.Error(2)
}

func (m *MockLoanRepository) Save(ctx context.Context, loan *lending.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

// MockOverdueRepository is a mock implementation of lending.OverdueRepository
type MockOverdueRepository struct {
	mock.Mock
}

func (m *MockOverdueRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) (*lending.Overdue, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Overdue), args.Error(1)
}

func (m *MockOverdueRepository) List(ctx context.Context, offset, limit int) ([]*lending.Overdue, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*lending.Overdue), args.Get(1).(int64), args.Error(2)
}

func (m *MockOverdueRepository) Save(ctx context.Context, overdue *lending.Overdue) error {
	args := m.Called(ctx, overdue)
	return args.Error(0)
}

// MockPenaltyRepository is a mock implementation of lending.PenaltyRepository
type MockPenaltyRepository struct {
	mock.Mock
}

func (m *MockPenaltyRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*lending.Penalty, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Penalty), args.Error(1)
}

func (m *MockPenaltyRepository) FindByLoanAndReason(ctx context.Context, loanID uuid.UUID, reason lending.PenaltyReason) (*lending.Penalty, error) {
	args := m.Called(ctx, loanID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Penalty), args.Error(1)
}

func (m *MockPenaltyRepository) FindUnpaidByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*lending.Penalty, error) {
	args := m.Called(ctx, borrowerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Penalty), args.Error(1)
}

func (m *MockPenaltyRepository) SumUnpaid(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPenaltyRepository) Save(ctx context.Context, penalty *lending.Penalty) error {
	args := m.Called(ctx, penalty)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of lending.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lending.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*lending.Payment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*lending.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumCollectedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, offset, limit int) ([]*lending.Payment, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*lending.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *lending.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockCopyRepository is a mock implementation of catalog.CopyRepository
type MockCopyRepository struct {
	mock.Mock
}

func (m *MockCopyRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Copy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Copy), args.Error(1)
}

func (m *MockCopyRepository) FindByCopyNumber(ctx context.Context, copyNumber string) (*catalog.Copy, error) {
	args := m.Called(ctx, copyNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Copy), args.Error(1)
}

func (m *MockCopyRepository) FindByBook(ctx context.Context, bookID uuid.UUID) ([]catalog.Copy, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Copy), args.Error(1)
}

func (m *MockCopyRepository) FindAvailableByBook(ctx context.Context, bookID uuid.UUID) (*catalog.Copy, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Copy), args.Error(1)
}

func (m *MockCopyRepository) CountByBookAndStatus(ctx context.Context, bookID uuid.UUID, status catalog.CopyStatus) (int64, error) {
	args := m.Called(ctx, bookID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCopyRepository) FindArchived(ctx context.Context) ([]catalog.Copy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Copy), args.Error(1)
}

func (m *MockCopyRepository) Save(ctx context.Context, copy *catalog.Copy) error {
	args := m.Called(ctx, copy)
	return args.Error(0)
}

// MockBookRepository is a mock implementation of catalog.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

func (m *MockBookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

func (m *MockBookRepository) Search(ctx context.Context, query string, limit int) ([]catalog.Book, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Book), args.Error(1)
}

func (m *MockBookRepository) Save(ctx context.Context, book *catalog.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]*identity.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role identity.UserRole, offset, limit int) ([]*identity.User, int64, error) {
	args := m.Called(ctx, role, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Save(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, offset, limit int) ([]*audit.Entry, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*audit.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*audit.Entry, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*audit.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuditRepository) ListByAction(ctx context.Context, action string, offset, limit int) ([]*audit.Entry, int64, error) {
	args := m.Called(ctx, action, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*audit.Entry), args.Get(1).(int64), args.Error(2)
}

// MockMarketPriceResolver is a mock implementation of MarketPriceResolver
type MockMarketPriceResolver struct {
	mock.Mock
}

func (m *MockMarketPriceResolver) ResolveLostFine(ctx context.Context, isbn string) (*valueobject.Money, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*valueobject.Money), args.Error(1)
}

// MockEventBus is a mock implementation of shared.EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	m.Called(handler, eventTypes)
}

func (m *MockEventBus) Unsubscribe(handler shared.EventHandler) {
	m.Called(handler)
}

func (m *MockEventBus) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventBus) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
