package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/acquisition"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormAcquisitionRepository implements acquisition.AcquisitionRepository using GORM
type GormAcquisitionRepository struct {
	db *gorm.DB
}

// NewGormAcquisitionRepository creates a new GormAcquisitionRepository
func NewGormAcquisitionRepository(db *gorm.DB) *GormAcquisitionRepository {
	return &GormAcquisitionRepository{db: db}
}

// FindByID finds an acquisition by its ID
func (r *GormAcquisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*acquisition.Acquisition, error) {
	var model models.AcquisitionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReferenceNo finds an acquisition by its reference number
func (r *GormAcquisitionRepository) FindByReferenceNo(ctx context.Context, referenceNo string) (*acquisition.Acquisition, error) {
	var model models.AcquisitionModel
	if err := r.db.WithContext(ctx).First(&model, "reference_no = ?", referenceNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns acquisitions with pagination, newest first
func (r *GormAcquisitionRepository) List(ctx context.Context, offset, limit int) ([]*acquisition.Acquisition, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.AcquisitionModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var acquisitionModels []models.AcquisitionModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&acquisitionModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainAcquisitions(acquisitionModels), total, nil
}

// ListByStatus returns acquisitions in one workflow stage with pagination
func (r *GormAcquisitionRepository) ListByStatus(ctx context.Context, status acquisition.AcquisitionStatus, offset, limit int) ([]*acquisition.Acquisition, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AcquisitionModel{}).Where("status = ?", status)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var acquisitionModels []models.AcquisitionModel
	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&acquisitionModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainAcquisitions(acquisitionModels), total, nil
}

// NextSequence derives the next acquisition sequence from the highest
// existing reference number.
func (r *GormAcquisitionRepository) NextSequence(ctx context.Context) (int, error) {
	var maxReference string
	if err := r.db.WithContext(ctx).
		Model(&models.AcquisitionModel{}).
		Where("reference_no LIKE ?", "ACQ%").
		Order("reference_no DESC").
		Limit(1).
		Pluck("reference_no", &maxReference).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	next := 1
	if maxReference != "" {
		var seq int
		if _, err := fmt.Sscanf(maxReference, "ACQ%06d", &seq); err == nil {
			next = seq + 1
		}
	}
	return next, nil
}

// Save upserts an acquisition
func (r *GormAcquisitionRepository) Save(ctx context.Context, acq *acquisition.Acquisition) error {
	return r.db.WithContext(ctx).Save(models.AcquisitionModelFromDomain(acq)).Error
}

func toDomainAcquisitions(acquisitionModels []models.AcquisitionModel) []*acquisition.Acquisition {
	acquisitions := make([]*acquisition.Acquisition, 0, len(acquisitionModels))
	for i := range acquisitionModels {
		acquisitions = append(acquisitions, acquisitionModels[i].ToDomain())
	}
	return acquisitions
}

var _ acquisition.AcquisitionRepository = (*GormAcquisitionRepository)(nil)
