package access

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestRequireAdmin(t *testing.T) {
	admin := Principal{UserID: uuid.New(), Role: enum.AppRoleAdmin}
	staff := Principal{UserID: uuid.New(), Role: enum.AppRoleStaff}

	assert.NoError(t, RequireAdmin(admin))
	err := RequireAdmin(staff)
	assert.True(t, apperror.HasCode(err, http.StatusForbidden))
	assert.False(t, Principal{}.IsAdmin())
}

func TestContextRoundTrip(t *testing.T) {
	p := Principal{UserID: uuid.New(), Role: enum.AppRoleStaff}

	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	got, ok := FromContext(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Equal(t, p, got)
}
