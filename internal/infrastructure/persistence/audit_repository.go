package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/audit"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormAuditRepository implements audit.Repository using GORM.
// The audit trail is append only.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Save appends an audit entry
func (r *GormAuditRepository) Save(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(models.AuditLogModelFromDomain(entry)).Error
}

// List returns audit entries with pagination, newest first
func (r *GormAuditRepository) List(ctx context.Context, offset, limit int) ([]*audit.Entry, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.AuditLogModel{}), offset, limit)
}

// ListByUser returns one user's audit entries with pagination
func (r *GormAuditRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*audit.Entry, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.AuditLogModel{}).Where("user_id = ?", userID), offset, limit)
}

// ListByAction returns audit entries for one action with pagination
func (r *GormAuditRepository) ListByAction(ctx context.Context, action string, offset, limit int) ([]*audit.Entry, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.AuditLogModel{}).Where("action = ?", action), offset, limit)
}

func (r *GormAuditRepository) list(_ context.Context, query *gorm.DB, offset, limit int) ([]*audit.Entry, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var entryModels []models.AuditLogModel
	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}
	entries := make([]*audit.Entry, 0, len(entryModels))
	for i := range entryModels {
		entries = append(entries, entryModels[i].ToDomain())
	}
	return entries, total, nil
}

var _ audit.Repository = (*GormAuditRepository)(nil)
