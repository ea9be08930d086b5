package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormPenaltyRepository implements lending.PenaltyRepository using GORM
type GormPenaltyRepository struct {
	db *gorm.DB
}

// NewGormPenaltyRepository creates a new GormPenaltyRepository
func NewGormPenaltyRepository(db *gorm.DB) *GormPenaltyRepository {
	return &GormPenaltyRepository{db: db}
}

// FindByLoan finds all penalties recorded against a loan
func (r *GormPenaltyRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*lending.Penalty, error) {
	var penaltyModels []models.PenaltyModel
	if err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at ASC").
		Find(&penaltyModels).Error; err != nil {
		return nil, err
	}
	return toDomainPenalties(penaltyModels), nil
}

// FindByLoanAndReason finds the single penalty of one reason for a loan
func (r *GormPenaltyRepository) FindByLoanAndReason(ctx context.Context, loanID uuid.UUID, reason lending.PenaltyReason) (*lending.Penalty, error) {
	var model models.PenaltyModel
	if err := r.db.WithContext(ctx).
		Where("loan_id = ? AND reason = ?", loanID, reason).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUnpaidByBorrower finds all unpaid penalties across a borrower's loans
func (r *GormPenaltyRepository) FindUnpaidByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*lending.Penalty, error) {
	var penaltyModels []models.PenaltyModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN loans ON loans.id = penalties.loan_id").
		Where("loans.borrower_id = ? AND penalties.is_paid = ?", borrowerID, false).
		Order("penalties.created_at ASC").
		Find(&penaltyModels).Error; err != nil {
		return nil, err
	}
	return toDomainPenalties(penaltyModels), nil
}

// SumUnpaid totals all unpaid penalty amounts
func (r *GormPenaltyRepository) SumUnpaid(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.PenaltyModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("is_paid = ?", false).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save upserts a penalty
func (r *GormPenaltyRepository) Save(ctx context.Context, penalty *lending.Penalty) error {
	return r.db.WithContext(ctx).Save(models.PenaltyModelFromDomain(penalty)).Error
}

func toDomainPenalties(penaltyModels []models.PenaltyModel) []*lending.Penalty {
	penalties := make([]*lending.Penalty, 0, len(penaltyModels))
	for i := range penaltyModels {
		penalties = append(penalties, penaltyModels[i].ToDomain())
	}
	return penalties
}

var _ lending.PenaltyRepository = (*GormPenaltyRepository)(nil)
