package events

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBus_DeliversToSubscribers(t *testing.T) {
	b := NewBus()
	var mu sync.Mutex
	var got []Event
	require.NoError(t, b.Subscribe(ReceiptIssued, func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	}))

	id := uuid.New()
	b.Publish(Event{Topic: ReceiptIssued, EntityID: id, Amount: 500})
	b.Publish(Event{Topic: OrderCreated})
	b.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].EntityID)
	assert.False(t, got[0].At.IsZero())
}

func TestAttachAuditLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	b := NewBus()
	require.NoError(t, AttachAuditLog(b, zap.New(core)))

	b.Publish(Event{Topic: LoanPaymentMade, Amount: 40000, Detail: "customer"})
	b.Wait()

	entries := logs.FilterMessage(LoanPaymentMade).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)
	assert.EqualValues(t, 40000, entries[0].ContextMap()["amount_cents"])
}

func TestDiscard(t *testing.T) {
	var p Publisher = Discard{}
	p.Publish(Event{Topic: OrderCreated})
}
