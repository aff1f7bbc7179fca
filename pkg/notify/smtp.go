package notify

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

type smtpNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func newSMTP(cfg Config) *smtpNotifier {
	return &smtpNotifier{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.From,
	}
}

func (s *smtpNotifier) message(n PickupNotice) (*gomail.Message, error) {
	body, err := renderPickup(n)
	if err != nil {
		return nil, err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", n.CustomerEmail, n.CustomerName)
	m.SetHeader("Subject", n.Subject())
	m.SetBody("text/html", body)
	return m, nil
}

func (s *smtpNotifier) NotifyPickup(ctx context.Context, n PickupNotice) error {
	if err := n.Validate(); err != nil {
		return err
	}
	m, err := s.message(n)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		return errors.Wrap(err, "smtp send")
	case <-ctx.Done():
		return ctx.Err()
	}
}
