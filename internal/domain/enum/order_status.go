package enum

import (
	"database/sql/driver"
	"fmt"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions lists the statuses reachable from each state through a
// status update. Completed is absent as a target: only receipt issuance
// completes an order.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusReady, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusPending, OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusProcessing, OrderStatusCancelled},
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether a status update from s to next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses a status update may move s to.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := orderTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// TerminalOrderStatuses lists statuses that block receipt issuance.
func TerminalOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusCompleted, OrderStatusCancelled}
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	str, err := unmarshalString(data)
	if err != nil {
		return err
	}
	v := OrderStatus(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid order status %q", str)
	}
	*s = v
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*s = OrderStatusPending
		return nil
	}
	*s = OrderStatus(str)
	return nil
}
