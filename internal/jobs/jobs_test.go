package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/config"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockKeys struct {
	mock.Mock
}

func (m *mockKeys) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	args := m.Called(ctx, key, userID)
	k, _ := args.Get(0).(*entity.IdempotencyKey)
	return k, args.Error(1)
}

func (m *mockKeys) Reserve(ctx context.Context, key *entity.IdempotencyKey, now time.Time) (bool, error) {
	args := m.Called(ctx, key, now)
	return args.Bool(0), args.Error(1)
}

func (m *mockKeys) Complete(ctx context.Context, key *entity.IdempotencyKey) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockKeys) Release(ctx context.Context, key string, userID uuid.UUID) error {
	return m.Called(ctx, key, userID).Error(0)
}

func (m *mockKeys) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type stubAlerter struct {
	alerts *service.LoanAlerts
	err    error
}

func (s stubAlerter) Alerts(context.Context) (*service.LoanAlerts, error) {
	return s.alerts, s.err
}

func TestRegister(t *testing.T) {
	s := New(&mockKeys{}, stubAlerter{}, nil, nil)
	require.NoError(t, s.Register(config.JobsConfig{}))
	assert.Equal(t, 2, s.Entries())

	bad := New(&mockKeys{}, stubAlerter{}, nil, nil)
	err := bad.Register(config.JobsConfig{IdempotencyPurge: "every tuesday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every tuesday")
}

func TestPurgeIdempotencyKeys(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	keys := &mockKeys{}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	keys.On("DeleteExpired", mock.Anything, now).Return(int64(4), nil).Once()

	s := New(keys, stubAlerter{}, time.UTC, zap.New(core))
	s.now = func() time.Time { return now }

	require.NoError(t, s.PurgeIdempotencyKeys(context.Background()))
	keys.AssertExpectations(t)
	require.Equal(t, 1, logs.FilterMessage("purged idempotency keys").Len())
	assert.Equal(t, int64(4), logs.All()[0].ContextMap()["deleted"])

	keys.On("DeleteExpired", mock.Anything, now).Return(int64(0), errors.New("db closed")).Once()
	err := s.PurgeIdempotencyKeys(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db closed")
}

func TestLogLoanAlerts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	alerts := &service.LoanAlerts{
		Overdue: []service.LoanAlert{{ID: uuid.New(), LenderName: "Rokel Bank", Balance: 5000, DaysOverdue: 3}},
		DueSoon: []service.LoanAlert{{ID: uuid.New(), LenderName: "Aunty Kadi", Balance: 700, DaysLeft: 2}},
	}
	s := New(&mockKeys{}, stubAlerter{alerts: alerts}, time.UTC, zap.New(core))

	require.NoError(t, s.LogLoanAlerts(context.Background()))
	overdue := logs.FilterMessage("business loan overdue").All()
	require.Len(t, overdue, 1)
	assert.Equal(t, zap.WarnLevel, overdue[0].Level)
	assert.Equal(t, "Rokel Bank", overdue[0].ContextMap()["lender"])
	assert.Equal(t, 1, logs.FilterMessage("business loan due soon").Len())

	failing := New(&mockKeys{}, stubAlerter{err: errors.New("timeout")}, time.UTC, zap.New(core))
	require.Error(t, failing.LogLoanAlerts(context.Background()))
}

func TestRunLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := New(&mockKeys{}, stubAlerter{}, time.UTC, zap.New(core))

	s.run("boom", func(context.Context) error { return errors.New("kaput") })()
	entries := logs.FilterMessage("job failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["job"])
}

func TestStartStop(t *testing.T) {
	s := New(&mockKeys{}, stubAlerter{}, time.UTC, nil)
	require.NoError(t, s.Register(config.JobsConfig{}))
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
