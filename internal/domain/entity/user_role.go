package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"gorm.io/gorm"
)

// UserRole maps an identity from the auth provider to an application role.
// Users without a row are treated as staff.
type UserRole struct {
	ID        uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_role" json:"user_id"`
	Role      enum.AppRole `gorm:"size:20;not null;uniqueIndex:idx_user_roles_user_role" json:"role"`
	Email     *string      `gorm:"size:255" json:"email,omitempty"`
	GrantedBy *uuid.UUID   `gorm:"type:uuid" json:"granted_by,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (UserRole) TableName() string {
	return "user_roles"
}
