package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
)

// RoleRepository manages user role assignments
type RoleRepository interface {
	// RoleOf returns admin when the user holds an admin row and staff otherwise.
	RoleOf(ctx context.Context, userID uuid.UUID) (enum.AppRole, error)
	List(ctx context.Context) ([]entity.UserRole, error)
	Assign(ctx context.Context, role *entity.UserRole) error
	Remove(ctx context.Context, userID uuid.UUID, role enum.AppRole) error
	CountAdmins(ctx context.Context) (int64, error)
}
