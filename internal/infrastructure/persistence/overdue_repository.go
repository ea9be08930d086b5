package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormOverdueRepository implements lending.OverdueRepository using GORM
type GormOverdueRepository struct {
	db *gorm.DB
}

// NewGormOverdueRepository creates a new GormOverdueRepository
func NewGormOverdueRepository(db *gorm.DB) *GormOverdueRepository {
	return &GormOverdueRepository{db: db}
}

// FindByLoan finds the overdue counter for a loan
func (r *GormOverdueRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) (*lending.Overdue, error) {
	var model models.OverdueModel
	if err := r.db.WithContext(ctx).First(&model, "loan_id = ?", loanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns overdue counters with pagination, most delinquent first
func (r *GormOverdueRepository) List(ctx context.Context, offset, limit int) ([]*lending.Overdue, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.OverdueModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var overdueModels []models.OverdueModel
	if err := r.db.WithContext(ctx).
		Order("overdue_days DESC").
		Offset(offset).Limit(limit).
		Find(&overdueModels).Error; err != nil {
		return nil, 0, err
	}
	overdues := make([]*lending.Overdue, 0, len(overdueModels))
	for i := range overdueModels {
		overdues = append(overdues, overdueModels[i].ToDomain())
	}
	return overdues, total, nil
}

// Save upserts an overdue counter
func (r *GormOverdueRepository) Save(ctx context.Context, overdue *lending.Overdue) error {
	return r.db.WithContext(ctx).Save(models.OverdueModelFromDomain(overdue)).Error
}

var _ lending.OverdueRepository = (*GormOverdueRepository)(nil)
