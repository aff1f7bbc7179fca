// Package access carries the caller identity into services so permission
// checks do not depend on request-global state.
package access

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/pkg/apperror"
)

// Principal is the authenticated caller of a service operation.
type Principal struct {
	UserID uuid.UUID    `json:"user_id"`
	Email  string       `json:"email,omitempty"`
	Role   enum.AppRole `json:"role"`
}

// IsAdmin reports whether the principal may delete records and manage roles.
func (p Principal) IsAdmin() bool {
	return p.Role == enum.AppRoleAdmin
}

// RequireAdmin returns a 403 error unless the principal is an admin.
func RequireAdmin(p Principal) error {
	if !p.IsAdmin() {
		return apperror.ErrAdminOnly
	}
	return nil
}

type principalKey struct{}

// WithPrincipal stores p on ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored on ctx, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
