// Package notify delivers customer notifications by email.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrDisabled is returned by the none driver.
	ErrDisabled = errors.New("notifications are disabled")
	// ErrMissingRecipient is returned when a notice has no email address.
	ErrMissingRecipient = errors.New("notice has no recipient email")
)

// Config selects and configures a delivery driver.
type Config struct {
	Driver        string // resend, smtp or none
	ResendAPIKey  string
	ResendBaseURL string
	From          string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	Timeout       time.Duration
}

// PickupNotice tells a customer their order can be collected.
type PickupNotice struct {
	OrderID       string
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	StoreName     string
	StorePhone    string
}

// Validate checks the fields every driver needs.
func (n PickupNotice) Validate() error {
	if strings.TrimSpace(n.CustomerEmail) == "" {
		return ErrMissingRecipient
	}
	if n.OrderNumber == "" {
		return errors.New("notice has no order number")
	}
	return nil
}

// Subject is the email subject line for the notice.
func (n PickupNotice) Subject() string {
	return fmt.Sprintf("Your Order %s is Ready for Pickup!", n.OrderNumber)
}

// PickupNotifier tells customers their orders are ready.
type PickupNotifier interface {
	NotifyPickup(ctx context.Context, notice PickupNotice) error
}

// New builds the notifier named by cfg.Driver.
func New(cfg Config) (PickupNotifier, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	switch strings.ToLower(cfg.Driver) {
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, errors.New("resend driver requires an API key")
		}
		return newResend(cfg), nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, errors.New("smtp driver requires a host")
		}
		return newSMTP(cfg), nil
	case "", "none":
		return Disabled{}, nil
	default:
		return nil, errors.Errorf("unknown notify driver %q", cfg.Driver)
	}
}

// Disabled drops every notice.
type Disabled struct{}

func (Disabled) NotifyPickup(context.Context, PickupNotice) error {
	return ErrDisabled
}
