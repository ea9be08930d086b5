package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shelfmaster/backend/internal/domain/identity"
	"github.com/shelfmaster/backend/internal/domain/shared"
	"github.com/shelfmaster/backend/internal/infrastructure/persistence/models"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username, case-insensitively
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns users with pagination, ordered by username
func (r *GormUserRepository) List(ctx context.Context, offset, limit int) ([]*identity.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).
		Order("username ASC").
		Offset(offset).Limit(limit).
		Find(&userModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainUsers(userModels), total, nil
}

// ListByRole returns users of one role with pagination
func (r *GormUserRepository) ListByRole(ctx context.Context, role identity.UserRole, offset, limit int) ([]*identity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("role = ?", role)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var userModels []models.UserModel
	if err := query.
		Order("username ASC").
		Offset(offset).Limit(limit).
		Find(&userModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainUsers(userModels), total, nil
}

// Save upserts a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(models.UserModelFromDomain(user)).Error
}

func toDomainUsers(userModels []models.UserModel) []*identity.User {
	users := make([]*identity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModels[i].ToDomain())
	}
	return users
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
