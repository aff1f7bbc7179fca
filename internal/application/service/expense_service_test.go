package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenses(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.expenses.CreateExpense(ctx, staff, &ExpenseInput{Description: "", Category: "rent", Amount: 0})
	appErr := requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Len(t, appErr.Errors, 2)

	day := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	expense, err := f.expenses.CreateExpense(ctx, staff, &ExpenseInput{
		Description: "Generator fuel", Category: " Utilities ", Amount: 85.25, ExpenseDate: &day,
	})
	require.NoError(t, err)
	assert.Equal(t, "utilities", expense.Category)
	assert.Equal(t, int64(8525), expense.Amount)

	updated, err := f.expenses.UpdateExpense(ctx, expense.ID, &ExpenseInput{
		Description: "Generator fuel", Category: "utilities", Amount: 90, Notes: strPtr("20 litres"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), updated.Amount)
	assert.True(t, updated.ExpenseDate.Equal(day))

	list, err := f.expenses.ListExpenses(ctx, &domainRepo.LedgerFilterParams{Category: "utilities"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Pagination.Total)

	requireCode(t, f.expenses.DeleteExpense(ctx, staff, expense.ID), http.StatusForbidden)
	require.NoError(t, f.expenses.DeleteExpense(ctx, admin, expense.ID))
	requireCode(t, f.expenses.DeleteExpense(ctx, admin, expense.ID), http.StatusNotFound)
}

func TestCashToBank(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.expenses.RecordTransfer(ctx, staff, &TransferInput{BankName: "", Amount: 10})
	requireCode(t, err, http.StatusUnprocessableEntity)

	transfer, err := f.expenses.RecordTransfer(ctx, staff, &TransferInput{
		BankName: "Sierra Leone Commercial Bank", Amount: 1500, ReferenceNumber: strPtr("DEP-991"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150000), transfer.Amount)
	assert.Equal(t, "DEP-991", *transfer.ReferenceNumber)

	list, err := f.expenses.ListTransfers(ctx, &domainRepo.LedgerFilterParams{Search: "dep-991"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	requireCode(t, f.expenses.DeleteTransfer(ctx, staff, transfer.ID), http.StatusForbidden)
	require.NoError(t, f.expenses.DeleteTransfer(ctx, admin, transfer.ID))
}

func TestRoles(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := uuid.New()

	_, err := f.roles.AssignRole(ctx, staff, &AssignRoleInput{UserID: user, Role: enum.AppRoleAdmin})
	requireCode(t, err, http.StatusForbidden)

	_, err = f.roles.AssignRole(ctx, admin, &AssignRoleInput{UserID: user, Role: enum.AppRole("owner")})
	requireCode(t, err, http.StatusUnprocessableEntity)

	role, err := f.roles.AssignRole(ctx, admin, &AssignRoleInput{UserID: user, Role: enum.AppRoleAdmin, Email: strPtr("Boss@Example.com")})
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", *role.Email)
	assert.Equal(t, admin.UserID, *role.GrantedBy)

	_, err = f.roles.AssignRole(ctx, admin, &AssignRoleInput{UserID: user, Role: enum.AppRoleAdmin})
	requireCode(t, err, http.StatusConflict)

	resolved, err := f.roles.Resolve(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, enum.AppRoleAdmin, resolved)

	self := admin
	self.UserID = user
	err = f.roles.RemoveRole(ctx, self, user, enum.AppRoleAdmin)
	requireCode(t, err, http.StatusUnprocessableEntity)

	roles, err := f.roles.ListRoles(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, roles, 1)

	require.NoError(t, f.roles.RemoveRole(ctx, admin, user, enum.AppRoleAdmin))
	resolved, err = f.roles.Resolve(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, enum.AppRoleStaff, resolved)

	err = f.roles.RemoveRole(ctx, admin, user, enum.AppRoleAdmin)
	requireCode(t, err, http.StatusNotFound)
}
