package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormLoanRepository implements lending.LoanRepository using GORM
type GormLoanRepository struct {
	db *gorm.DB
}

// NewGormLoanRepository creates a new GormLoanRepository
func NewGormLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{db: db}
}

// FindByID finds a loan by its ID
func (r *GormLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Loan, error) {
	var model models.LoanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBorrower finds all loans of a borrower, newest first
func (r *GormLoanRepository) FindByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*lending.Loan, error) {
	var loanModels []models.LoanModel
	if err := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("transaction_date DESC").
		Find(&loanModels).Error; err != nil {
		return nil, err
	}
	return toDomainLoans(loanModels), nil
}

// FindDueForScan returns unreturned loans at least one full day past due,
// skipping terminal and completed statuses. The one-day grace is folded into
// the cutoff so the comparison stays portable across SQL dialects.
func (r *GormLoanRepository) FindDueForScan(ctx context.Context, asOf time.Time) ([]*lending.Loan, error) {
	cutoff := asOf.AddDate(0, 0, -1)
	var loanModels []models.LoanModel
	if err := r.db.WithContext(ctx).
		Where("due_date <= ?", cutoff).
		Where("return_date IS NULL").
		Where("status NOT IN ?", []lending.LoanStatus{
			lending.LoanStatusLost, lending.LoanStatusDamaged, lending.LoanStatusCompleted,
		}).
		Order("due_date ASC").
		Find(&loanModels).Error; err != nil {
		return nil, err
	}
	return toDomainLoans(loanModels), nil
}

// CountActiveByBorrower counts the borrower's unreturned loans in ACTIVE status
func (r *GormLoanRepository) CountActiveByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoanModel{}).
		Where("borrower_id = ? AND status = ? AND return_date IS NULL", borrowerID, lending.LoanStatusActive).
		Count(&count).Error
	return count, err
}

// ExistsUnreturnedForBook checks whether the borrower holds any unreturned
// loan on any copy of the given book
func (r *GormLoanRepository) ExistsUnreturnedForBook(ctx context.Context, borrowerID, bookID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoanModel{}).
		Where("borrower_id = ? AND book_id = ? AND return_date IS NULL", borrowerID, bookID).
		Where("status NOT IN ?", []lending.LoanStatus{
			lending.LoanStatusCompleted, lending.LoanStatusLost, lending.LoanStatusDamaged,
		}).
		Count(&count).Error
	return count > 0, err
}

// CountLostOrDamagedByBorrower counts the borrower's loans that ended lost or damaged
func (r *GormLoanRepository) CountLostOrDamagedByBorrower(ctx context.Context, borrowerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoanModel{}).
		Where("borrower_id = ? AND status IN ?", borrowerID,
			[]lending.LoanStatus{lending.LoanStatusLost, lending.LoanStatusDamaged}).
		Count(&count).Error
	return count, err
}

// CountByStatus counts loans currently in the given status
func (r *GormLoanRepository) CountByStatus(ctx context.Context, status lending.LoanStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoanModel{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountIssuedBetween counts loans issued within [from, to]
func (r *GormLoanRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoanModel{}).
		Where("transaction_date >= ? AND transaction_date <= ?", from, to).
		Count(&count).Error
	return count, err
}

// CountReturnedBetween counts loans returned within [from, to]
func (r *GormLoanRepository) CountReturnedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LoanModel{}).
		Where("return_date >= ? AND return_date <= ?", from, to).
		Count(&count).Error
	return count, err
}

// List returns loans with pagination, newest first
func (r *GormLoanRepository) List(ctx context.Context, offset, limit int) ([]*lending.Loan, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.LoanModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var loanModels []models.LoanModel
	if err := r.db.WithContext(ctx).
		Order("transaction_date DESC").
		Offset(offset).Limit(limit).
		Find(&loanModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainLoans(loanModels), total, nil
}

// ListByStatus returns loans in one status with pagination, newest first
func (r *GormLoanRepository) ListByStatus(ctx context.Context, status lending.LoanStatus, offset, limit int) ([]*lending.Loan, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LoanModel{}).Where("status = ?", status)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var loanModels []models.LoanModel
	if err := query.
		Order("transaction_date DESC").
		Offset(offset).Limit(limit).
		Find(&loanModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainLoans(loanModels), total, nil
}

// Save upserts a loan
func (r *GormLoanRepository) Save(ctx context.Context, loan *lending.Loan) error {
	return r.db.WithContext(ctx).Save(models.LoanModelFromDomain(loan)).Error
}

func toDomainLoans(loanModels []models.LoanModel) []*lending.Loan {
	loans := make([]*lending.Loan, 0, len(loanModels))
	for i := range loanModels {
		loans = append(loans, loanModels[i].ToDomain())
	}
	return loans
}

var _ lending.LoanRepository = (*GormLoanRepository)(nil)
