package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		legal    bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusReady, true},
		{OrderStatusProcessing, OrderStatusReady, true},
		{OrderStatusProcessing, OrderStatusPending, true},
		{OrderStatusReady, OrderStatusProcessing, true},
		{OrderStatusReady, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusReady, OrderStatusCompleted, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusReady, OrderStatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.legal, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusReady.IsTerminal())
	assert.Empty(t, OrderStatusCompleted.NextStatuses())
}

func TestOrderStatusUnmarshalRejectsUnknown(t *testing.T) {
	var s OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"ready"`), &s))
	assert.Equal(t, OrderStatusReady, s)

	assert.Error(t, json.Unmarshal([]byte(`"shipped"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`2`), &s))
}

func TestOrderTypeAllows(t *testing.T) {
	assert.True(t, OrderTypeMixed.Allows(ItemTypeLaundry))
	assert.True(t, OrderTypeMixed.Allows(ItemTypeMerchandise))
	assert.True(t, OrderTypeLaundry.Allows(ItemTypeLaundry))
	assert.False(t, OrderTypeLaundry.Allows(ItemTypeMerchandise))
	assert.False(t, OrderTypeMerchandise.Allows(ItemTypeLaundry))
}

func TestScanDefaults(t *testing.T) {
	var status LoanStatus
	require.NoError(t, status.Scan(nil))
	assert.Equal(t, LoanStatusActive, status)

	var role AppRole
	require.NoError(t, role.Scan([]byte("admin")))
	assert.Equal(t, AppRoleAdmin, role)

	var credit CreditStatus
	assert.Error(t, credit.Scan(42))
}

func TestParseTaxPolicy(t *testing.T) {
	p, err := ParseTaxPolicy("")
	require.NoError(t, err)
	assert.Equal(t, TaxPolicyNone, p)

	p, err = ParseTaxPolicy("flat10")
	require.NoError(t, err)
	assert.Equal(t, TaxPolicyFlat, p)

	_, err = ParseTaxPolicy("vat16")
	assert.Error(t, err)
}
