// Package jobs runs housekeeping on a cron schedule.
package jobs

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/config"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	DefaultIdempotencyPurge = "@daily"
	DefaultLoanAlerts       = "0 0 7 * * *"
	runTimeout              = time.Minute
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// LoanAlerter reports overdue and due-soon business loans.
type LoanAlerter interface {
	Alerts(ctx context.Context) (*service.LoanAlerts, error)
}

// Scheduler owns the cron instance and the tasks it runs.
type Scheduler struct {
	cron  *cron.Cron
	keys  repository.IdempotencyRepository
	loans LoanAlerter
	log   *zap.Logger
	now   func() time.Time
}

func New(keys repository.IdempotencyRepository, loans LoanAlerter, loc *time.Location, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(loc), cron.WithParser(cronParser)),
		keys:  keys,
		loans: loans,
		log:   log.Named("jobs"),
		now:   time.Now,
	}
}

// Register adds every task using the configured schedules.
func (s *Scheduler) Register(cfg config.JobsConfig) error {
	purge := cfg.IdempotencyPurge
	if purge == "" {
		purge = DefaultIdempotencyPurge
	}
	alerts := cfg.LoanAlertsSchedule
	if alerts == "" {
		alerts = DefaultLoanAlerts
	}

	if _, err := s.cron.AddFunc(purge, s.run("purge_idempotency_keys", s.PurgeIdempotencyKeys)); err != nil {
		return errors.Wrapf(err, "schedule idempotency purge %q", purge)
	}
	if _, err := s.cron.AddFunc(alerts, s.run("loan_alerts", s.LogLoanAlerts)); err != nil {
		return errors.Wrapf(err, "schedule loan alerts %q", alerts)
	}
	return nil
}

func (s *Scheduler) run(name string, task func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := task(ctx); err != nil {
			s.log.Error("job failed", zap.String("job", name), zap.Error(err))
		}
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running tasks or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Entries is the number of scheduled tasks.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// PurgeIdempotencyKeys deletes stored responses past their expiry.
func (s *Scheduler) PurgeIdempotencyKeys(ctx context.Context) error {
	n, err := s.keys.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return errors.Wrap(err, "delete expired idempotency keys")
	}
	s.log.Info("purged idempotency keys", zap.Int64("deleted", n))
	return nil
}

// LogLoanAlerts writes one line per overdue or due-soon business loan.
func (s *Scheduler) LogLoanAlerts(ctx context.Context) error {
	alerts, err := s.loans.Alerts(ctx)
	if err != nil {
		return errors.Wrap(err, "load loan alerts")
	}
	for _, a := range alerts.Overdue {
		s.log.Warn("business loan overdue",
			zap.String("loan_id", a.ID.String()),
			zap.String("lender", a.LenderName),
			zap.Int64("balance_cents", a.Balance),
			zap.Int("days_overdue", a.DaysOverdue))
	}
	for _, a := range alerts.DueSoon {
		s.log.Info("business loan due soon",
			zap.String("loan_id", a.ID.String()),
			zap.String("lender", a.LenderName),
			zap.Int64("balance_cents", a.Balance),
			zap.Int("days_left", a.DaysLeft))
	}
	return nil
}
