package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/infrastructure/database"
	"github.com/sangkips/laundromart-api/internal/infrastructure/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultDataIsIdempotent(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, database.SeedDefaultData(db))
	require.NoError(t, database.SeedDefaultData(db))

	var count int64
	require.NoError(t, db.Model(&entity.LaundryService{}).Count(&count).Error)
	assert.Equal(t, int64(len(database.DefaultLaundryCatalog())), count)
}

func TestGrantAdminOnce(t *testing.T) {
	db := dbtest.New(t)
	userID := uuid.New()

	require.NoError(t, database.GrantAdmin(db, userID, "owner@example.com"))
	require.NoError(t, database.GrantAdmin(db, userID, "owner@example.com"))

	var roles []entity.UserRole
	require.NoError(t, db.Where("user_id = ?", userID).Find(&roles).Error)
	require.Len(t, roles, 1)
	assert.Equal(t, enum.AppRoleAdmin, roles[0].Role)
}

func TestNewReadDBPicksBindStyle(t *testing.T) {
	db := dbtest.New(t)

	rdb, err := database.NewReadDB(db)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1 WHERE 1 = ?", rdb.Rebind("SELECT 1 WHERE 1 = ?"))
}
