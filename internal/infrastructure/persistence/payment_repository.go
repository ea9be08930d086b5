package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/lending"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormPaymentRepository implements lending.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment receipt by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByLoan finds the receipts recorded against a loan
func (r *GormPaymentRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*lending.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// SumCollectedBetween totals fines collected within [from, to]
func (r *GormPaymentRepository) SumCollectedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("payment_date >= ? AND payment_date <= ?", from, to).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// List returns payment receipts with pagination, newest first
func (r *GormPaymentRepository) List(ctx context.Context, offset, limit int) ([]*lending.Payment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Order("payment_date DESC").
		Offset(offset).Limit(limit).
		Find(&paymentModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainPayments(paymentModels), total, nil
}

// Save inserts a payment receipt. Receipts are immutable once written.
func (r *GormPaymentRepository) Save(ctx context.Context, payment *lending.Payment) error {
	return r.db.WithContext(ctx).Create(models.PaymentModelFromDomain(payment)).Error
}

func toDomainPayments(paymentModels []models.PaymentModel) []*lending.Payment {
	payments := make([]*lending.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentModels[i].ToDomain())
	}
	return payments
}

var _ lending.PaymentRepository = (*GormPaymentRepository)(nil)
