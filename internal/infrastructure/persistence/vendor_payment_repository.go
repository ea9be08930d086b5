package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/acquisition"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormVendorPaymentRepository implements acquisition.VendorPaymentRepository using GORM
type GormVendorPaymentRepository struct {
	db *gorm.DB
}

// NewGormVendorPaymentRepository creates a new GormVendorPaymentRepository
func NewGormVendorPaymentRepository(db *gorm.DB) *GormVendorPaymentRepository {
	return &GormVendorPaymentRepository{db: db}
}

// FindByAcquisition finds the disbursements recorded against an acquisition
func (r *GormVendorPaymentRepository) FindByAcquisition(ctx context.Context, acquisitionID uuid.UUID) ([]*acquisition.VendorPayment, error) {
	var paymentModels []models.VendorPaymentModel
	if err := r.db.WithContext(ctx).
		Where("acquisition_id = ?", acquisitionID).
		Order("paid_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]*acquisition.VendorPayment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentModels[i].ToDomain())
	}
	return payments, nil
}

// Save inserts a disbursement. Disbursements are immutable once written.
func (r *GormVendorPaymentRepository) Save(ctx context.Context, payment *acquisition.VendorPayment) error {
	return r.db.WithContext(ctx).Create(models.VendorPaymentModelFromDomain(payment)).Error
}

var _ acquisition.VendorPaymentRepository = (*GormVendorPaymentRepository)(nil)
