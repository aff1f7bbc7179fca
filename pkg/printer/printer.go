// Package printer drives ESC/POS thermal receipt printers.
package printer

import (
	"context"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Printer accepts raw ESC/POS bytes.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	Ready() bool
	Kind() string
}

// Config selects a printer backend.
type Config struct {
	Type    string // usb, network or none
	USBPath string
	Address string
}

// New builds the printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, errors.New("printer: usb type needs a device path")
		}
		return &usbPrinter{path: cfg.USBPath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, errors.New("printer: network type needs an address")
		}
		return &networkPrinter{address: cfg.Address, dialTimeout: 5 * time.Second}, nil
	case "", "none":
		return Null{}, nil
	default:
		return nil, errors.Errorf("printer: unknown type %q", cfg.Type)
	}
}

// usbPrinter writes to a device file such as /dev/usb/lp0.
type usbPrinter struct {
	path string
}

func (p *usbPrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "printer: open %s", p.path)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return errors.Wrapf(err, "printer: write %s", p.path)
	}
	return nil
}

func (p *usbPrinter) Ready() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

func (p *usbPrinter) Kind() string { return "usb" }

// networkPrinter speaks raw TCP, usually on port 9100.
type networkPrinter struct {
	address     string
	dialTimeout time.Duration
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return errors.Wrapf(err, "printer: connect %s", p.address)
	}
	defer conn.Close()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return errors.Wrapf(err, "printer: write %s", p.address)
	}
	return nil
}

func (p *networkPrinter) Ready() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func (p *networkPrinter) Kind() string { return "network" }

// Null discards output. It is used when no printer is attached.
type Null struct{}

func (Null) Print(context.Context, []byte) error { return nil }
func (Null) Ready() bool                         { return false }
func (Null) Kind() string                        { return "none" }
