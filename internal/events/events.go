// Package events publishes ledger mutations to in-process subscribers.
package events

import (
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	OrderCancelled     = "order.cancelled"
	ReceiptIssued      = "receipt.issued"
	LoanCreated        = "loan.created"
	LoanPaymentMade    = "loan.payment"
	LoanDeleted        = "loan.deleted"
	CreditCreated      = "credit.created"
	CreditRedeemed     = "credit.redeemed"
	CreditDeleted      = "credit.deleted"
	StockAdjusted      = "stock.adjusted"
	ExpenseRecorded    = "expense.recorded"
	CashBanked         = "cash.banked"
	RoleChanged        = "role.changed"
)

// Topics lists every topic the audit log follows.
var Topics = []string{
	OrderCreated, OrderStatusChanged, OrderCancelled, ReceiptIssued,
	LoanCreated, LoanPaymentMade, LoanDeleted,
	CreditCreated, CreditRedeemed, CreditDeleted,
	StockAdjusted, ExpenseRecorded, CashBanked, RoleChanged,
}

// Event describes one committed change.
type Event struct {
	Topic    string
	Actor    uuid.UUID
	EntityID uuid.UUID
	Amount   int64
	Detail   string
	At       time.Time
}

// Publisher is what services depend on.
type Publisher interface {
	Publish(e Event)
}

// Bus fans events out to asynchronous subscribers.
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

// Publish stamps and dispatches e. Subscribers run off the caller's goroutine.
func (b *Bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	b.bus.Publish(e.Topic, e)
}

// Subscribe registers fn for topic. Calls to fn are serialised per subscriber.
func (b *Bus) Subscribe(topic string, fn func(Event)) error {
	return b.bus.SubscribeAsync(topic, fn, true)
}

// Wait blocks until queued deliveries have run.
func (b *Bus) Wait() {
	b.bus.WaitAsync()
}

// AttachAuditLog writes every event to log.
func AttachAuditLog(b *Bus, log *zap.Logger) error {
	log = log.Named("audit")
	for _, topic := range Topics {
		if err := b.Subscribe(topic, func(e Event) {
			log.Info(e.Topic,
				zap.String("actor", e.Actor.String()),
				zap.String("entity_id", e.EntityID.String()),
				zap.Int64("amount_cents", e.Amount),
				zap.String("detail", e.Detail),
				zap.Time("at", e.At),
			)
		}); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops events.
type Discard struct{}

func (Discard) Publish(Event) {}
