package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/catalog"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormBookRepository implements catalog.BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GormBookRepository
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// FindByID finds a book by its ID
func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	var model models.BookModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByISBN finds a book by its ISBN
func (r *GormBookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	var model models.BookModel
	if err := r.db.WithContext(ctx).First(&model, "isbn = ?", isbn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Search finds unarchived books matching the query against title, author or ISBN
func (r *GormBookRepository) Search(ctx context.Context, query string, limit int) ([]catalog.Book, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var bookModels []models.BookModel
	if err := r.db.WithContext(ctx).
		Where("archived = ?", false).
		Where("LOWER(title) LIKE ? OR LOWER(author_name) LIKE ? OR LOWER(isbn) LIKE ?", pattern, pattern, pattern).
		Order("title ASC").
		Limit(limit).
		Find(&bookModels).Error; err != nil {
		return nil, err
	}
	books := make([]catalog.Book, 0, len(bookModels))
	for i := range bookModels {
		books = append(books, *bookModels[i].ToDomain())
	}
	return books, nil
}

// Save upserts a book
func (r *GormBookRepository) Save(ctx context.Context, book *catalog.Book) error {
	return r.db.WithContext(ctx).Save(models.BookModelFromDomain(book)).Error
}

var _ catalog.BookRepository = (*GormBookRepository)(nil)
