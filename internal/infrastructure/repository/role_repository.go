package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"gorm.io/gorm"
)

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new user role repository
func NewRoleRepository(db *gorm.DB) domainRepo.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) RoleOf(ctx context.Context, userID uuid.UUID) (enum.AppRole, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.UserRole{}).
		Where("user_id = ? AND role = ?", userID, enum.AppRoleAdmin).
		Count(&n).Error
	if err != nil {
		return "", err
	}
	if n > 0 {
		return enum.AppRoleAdmin, nil
	}
	return enum.AppRoleStaff, nil
}

func (r *roleRepository) List(ctx context.Context) ([]entity.UserRole, error) {
	var roles []entity.UserRole
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepository) Assign(ctx context.Context, role *entity.UserRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepository) Remove(ctx context.Context, userID uuid.UUID, role enum.AppRole) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&entity.UserRole{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrReferenceMissing
	}
	return nil
}

func (r *roleRepository) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.UserRole{}).
		Where("role = ?", enum.AppRoleAdmin).
		Count(&n).Error
	return n, err
}
