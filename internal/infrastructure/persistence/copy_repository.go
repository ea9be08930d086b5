package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/catalog"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormCopyRepository implements catalog.CopyRepository using GORM
type GormCopyRepository struct {
	db *gorm.DB
}

// NewGormCopyRepository creates a new GormCopyRepository
func NewGormCopyRepository(db *gorm.DB) *GormCopyRepository {
	return &GormCopyRepository{db: db}
}

// FindByID finds a copy by its ID
func (r *GormCopyRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Copy, error) {
	var model models.CopyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCopyNumber finds a copy by its unique copy number
func (r *GormCopyRepository) FindByCopyNumber(ctx context.Context, copyNumber string) (*catalog.Copy, error) {
	var model models.CopyModel
	if err := r.db.WithContext(ctx).First(&model, "copy_number = ?", copyNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBook finds all copies of a book
func (r *GormCopyRepository) FindByBook(ctx context.Context, bookID uuid.UUID) ([]catalog.Copy, error) {
	var copyModels []models.CopyModel
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("copy_number ASC").
		Find(&copyModels).Error; err != nil {
		return nil, err
	}
	return toDomainCopies(copyModels), nil
}

// FindAvailableByBook returns the first available copy of a book
func (r *GormCopyRepository) FindAvailableByBook(ctx context.Context, bookID uuid.UUID) (*catalog.Copy, error) {
	var model models.CopyModel
	if err := r.db.WithContext(ctx).
		Where("book_id = ? AND status = ?", bookID, catalog.CopyStatusAvailable).
		Order("copy_number ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByBookAndStatus counts a book's copies in one status
func (r *GormCopyRepository) CountByBookAndStatus(ctx context.Context, bookID uuid.UUID, status catalog.CopyStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CopyModel{}).
		Where("book_id = ? AND status = ?", bookID, status).
		Count(&count).Error
	return count, err
}

// FindArchived finds all archived copies
func (r *GormCopyRepository) FindArchived(ctx context.Context) ([]catalog.Copy, error) {
	var copyModels []models.CopyModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", catalog.CopyStatusArchived).
		Order("archived_at DESC").
		Find(&copyModels).Error; err != nil {
		return nil, err
	}
	return toDomainCopies(copyModels), nil
}

// Save upserts a copy
func (r *GormCopyRepository) Save(ctx context.Context, copy *catalog.Copy) error {
	return r.db.WithContext(ctx).Save(models.CopyModelFromDomain(copy)).Error
}

func toDomainCopies(copyModels []models.CopyModel) []catalog.Copy {
	copies := make([]catalog.Copy, 0, len(copyModels))
	for i := range copyModels {
		copies = append(copies, *copyModels[i].ToDomain())
	}
	return copies
}

var _ catalog.CopyRepository = (*GormCopyRepository)(nil)
