package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/pkg/money"
	"github.com/sangkips/laundromart-api/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService lays out receipt slips and sends them to the thermal printer.
type PrinterService struct {
	printer printer.Printer
	money   *money.Formatter
	store   StoreInfo
	width   int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, formatter *money.Formatter, store StoreInfo, width int) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{printer: p, money: formatter, store: store, width: width}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// Status reports whether a printer is configured and reachable.
func (s *PrinterService) Status() *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.Ready(),
		Type:       kind,
		Width:      s.width,
	}
}

// BuildSlip composes the printable view of an issued receipt. The receipt
// must carry its order and items.
func (s *PrinterService) BuildSlip(r *entity.Receipt) *entity.ReceiptSlip {
	slip := &entity.ReceiptSlip{
		Header: entity.SlipHeader{
			StoreName: s.store.Name,
			Address:   s.store.Address,
			Phone:     s.store.Phone,
		},
		ReceiptNumber: r.ReceiptNumber,
		Date:          r.IssuedAt.Format("2006-01-02 15:04"),
		PaymentMethod: strings.ToUpper(r.PaymentMethod.String()),
		AmountPaid:    s.money.Format(r.AmountPaid),
		Change:        s.money.Format(r.ChangeGiven),
		Lines:         []entity.SlipLine{},
	}

	if o := r.Order; o != nil {
		slip.OrderNumber = o.OrderNumber
		slip.Subtotal = s.money.Format(o.Subtotal)
		slip.Total = s.money.Format(o.Total)
		if o.Tax > 0 {
			slip.Tax = s.money.Format(o.Tax)
		}
		if o.Customer != nil {
			slip.Customer = o.Customer.Name
		}
		for _, item := range o.Items {
			slip.Lines = append(slip.Lines, entity.SlipLine{
				Name:      item.Description,
				Quantity:  item.Quantity,
				UnitPrice: s.money.Format(item.UnitPrice),
				Total:     s.money.Format(item.Total),
			})
		}
	}
	return slip
}

// FormatSlip renders a slip as ESC/POS bytes.
func (s *PrinterService) FormatSlip(slip *entity.ReceiptSlip) []byte {
	doc := printer.NewDocument(s.width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.FontDouble).
		Line(slip.Header.StoreName).
		Size(printer.FontNormal).
		Bold(false)
	if slip.Header.Address != "" {
		doc.Line(slip.Header.Address)
	}
	if slip.Header.Phone != "" {
		doc.Line(slip.Header.Phone)
	}

	doc.Align(printer.AlignLeft).
		Rule('-').
		Pair("Receipt:", slip.ReceiptNumber).
		Pair("Order:", slip.OrderNumber).
		Pair("Date:", slip.Date)
	if slip.Customer != "" {
		doc.Pair("Customer:", slip.Customer)
	}
	doc.Pair("Payment:", slip.PaymentMethod).
		Rule('-')

	for _, l := range slip.Lines {
		doc.Line(l.Name)
		doc.Pair("  "+strconv.Itoa(l.Quantity)+" x "+l.UnitPrice, l.Total)
	}

	doc.Rule('-').
		Pair("Subtotal:", slip.Subtotal)
	if slip.Tax != "" {
		doc.Pair("Tax:", slip.Tax)
	}
	doc.Bold(true).
		Pair("TOTAL:", slip.Total).
		Bold(false).
		Pair("Paid:", slip.AmountPaid).
		Pair("Change:", slip.Change).
		Rule('-')

	doc.Align(printer.AlignCenter).
		Feed(1).
		Line("Thank you for your business!").
		Align(printer.AlignLeft).
		Feed(3).
		Cut()

	return doc.Bytes()
}

// PrintReceipt prints a receipt and returns the slip that was sent.
func (s *PrinterService) PrintReceipt(ctx context.Context, r *entity.Receipt) (*entity.ReceiptSlip, error) {
	slip := s.BuildSlip(r)
	if err := s.printer.Print(ctx, s.FormatSlip(slip)); err != nil {
		zap.L().Warn("receipt print failed",
			zap.String("receipt_number", r.ReceiptNumber),
			zap.Error(err))
		return slip, err
	}
	return slip, nil
}
