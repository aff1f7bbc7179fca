package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/events"
	"github.com/sangkips/laundromart-api/pkg/apperror"
)

// RoleService manages which users hold the admin role
type RoleService struct {
	roleRepo repository.RoleRepository
	events   events.Publisher
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo repository.RoleRepository, pub events.Publisher) *RoleService {
	return &RoleService{roleRepo: roleRepo, events: pub}
}

// Resolve returns the role a user acts with
func (s *RoleService) Resolve(ctx context.Context, userID uuid.UUID) (enum.AppRole, error) {
	return s.roleRepo.RoleOf(ctx, userID)
}

// ListRoles returns every role assignment
func (s *RoleService) ListRoles(ctx context.Context, p access.Principal) ([]entity.UserRole, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []entity.UserRole{}
	}
	return roles, nil
}

// AssignRoleInput represents a role grant
type AssignRoleInput struct {
	UserID uuid.UUID
	Role   enum.AppRole
	Email  *string
}

// AssignRole grants a role to a user
func (s *RoleService) AssignRole(ctx context.Context, p access.Principal, input *AssignRoleInput) (*entity.UserRole, error) {
	if err := access.RequireAdmin(p); err != nil {
		return nil, err
	}
	if input.UserID == uuid.Nil {
		return nil, apperror.NewFieldError("user_id", "User ID is required")
	}
	if !input.Role.IsValid() {
		return nil, apperror.NewFieldError("role", "Role must be admin or staff")
	}

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	grantedBy := p.UserID
	role := &entity.UserRole{
		UserID:    input.UserID,
		Role:      input.Role,
		Email:     email,
		GrantedBy: &grantedBy,
	}
	if err := s.roleRepo.Assign(ctx, role); err != nil {
		return nil, storeError(err, "Role assignment")
	}
	s.events.Publish(events.Event{Topic: events.RoleChanged, Actor: p.UserID, EntityID: input.UserID, Detail: "grant " + input.Role.String()})
	return role, nil
}

// RemoveRole revokes a role. Admins cannot revoke their own admin role.
func (s *RoleService) RemoveRole(ctx context.Context, p access.Principal, userID uuid.UUID, role enum.AppRole) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if !role.IsValid() {
		return apperror.NewFieldError("role", "Role must be admin or staff")
	}
	if role == enum.AppRoleAdmin && userID == p.UserID {
		return apperror.NewUnprocessableError("You cannot remove your own admin role")
	}
	if err := s.roleRepo.Remove(ctx, userID, role); err != nil {
		return storeError(err, "Role assignment")
	}
	s.events.Publish(events.Event{Topic: events.RoleChanged, Actor: p.UserID, EntityID: userID, Detail: "revoke " + role.String()})
	return nil
}
