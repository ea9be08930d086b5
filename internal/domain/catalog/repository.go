package catalog

import (
	"context"

	"github.com/google/uuid"
)

// BookRepository persists books
type BookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)
	FindByISBN(ctx context.Context, isbn string) (*Book, error)
	Search(ctx context.Context, query string, limit int) ([]Book, error)
	Save(ctx context.Context, book *Book) error
}

// CopyRepository persists physical copies
type CopyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Copy, error)
	FindByCopyNumber(ctx context.Context, copyNumber string) (*Copy, error)
	FindByBook(ctx context.Context, bookID uuid.UUID) ([]Copy, error)
	// FindAvailableByBook returns the first Available copy of a book, or
	// shared.ErrNotFound when every copy is out.
	FindAvailableByBook(ctx context.Context, bookID uuid.UUID) (*Copy, error)
	CountByBookAndStatus(ctx context.Context, bookID uuid.UUID, status CopyStatus) (int64, error)
	FindArchived(ctx context.Context) ([]Copy, error)
	Save(ctx context.Context, copy *Copy) error
}
