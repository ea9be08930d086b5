package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/shelfmaster/backend/internal/domain/audit"
	"github.com/shelfmaster/backend/internal/domain/catalog"
)

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
