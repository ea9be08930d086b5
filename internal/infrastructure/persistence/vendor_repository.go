package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/acquisition"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormVendorRepository implements acquisition.VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*acquisition.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a vendor by name, case-insensitively
func (r *GormVendorRepository) FindByName(ctx context.Context, name string) (*acquisition.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns vendors with pagination, ordered by name
func (r *GormVendorRepository) List(ctx context.Context, offset, limit int) ([]*acquisition.Vendor, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.VendorModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var vendorModels []models.VendorModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&vendorModels).Error; err != nil {
		return nil, 0, err
	}
	vendors := make([]*acquisition.Vendor, 0, len(vendorModels))
	for i := range vendorModels {
		vendors = append(vendors, vendorModels[i].ToDomain())
	}
	return vendors, total, nil
}

// Save upserts a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *acquisition.Vendor) error {
	return r.db.WithContext(ctx).Save(models.VendorModelFromDomain(vendor)).Error
}

var _ acquisition.VendorRepository = (*GormVendorRepository)(nil)
