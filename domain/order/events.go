package order

import (
	"time"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

// OrderCreatedEvent tells downstream consumers (kitchen/ops, notifications)
// that a confirmed order exists and work may start. For pay-on-pickup orders
// it is recorded at confirmation; for online payment it is deferred until the
// payment callback, because the kitchen must not start on an unpaid order.
type OrderCreatedEvent struct {
	orderID     string
	userID      string
	totalAmount shared.Money
	occurredOn  time.Time
}

func NewOrderCreatedEvent(orderID, userID string, totalAmount shared.Money) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		orderID:     orderID,
		userID:      userID,
		totalAmount: totalAmount,
		occurredOn:  time.Now(),
	}
}

func (e *OrderCreatedEvent) EventName() string         { return "order.created" }
func (e *OrderCreatedEvent) OccurredOn() time.Time     { return e.occurredOn }
func (e *OrderCreatedEvent) AggregateID() string       { return e.orderID }
func (e *OrderCreatedEvent) OrderID() string           { return e.orderID }
func (e *OrderCreatedEvent) UserID() string            { return e.userID }
func (e *OrderCreatedEvent) TotalAmount() shared.Money { return e.totalAmount }

// OrderUpdatedEvent is recorded on every administrative update.
type OrderUpdatedEvent struct {
	orderID    string
	status     Status
	occurredOn time.Time
}

func NewOrderUpdatedEvent(orderID string, status Status) *OrderUpdatedEvent {
	return &OrderUpdatedEvent{
		orderID:    orderID,
		status:     status,
		occurredOn: time.Now(),
	}
}

func (e *OrderUpdatedEvent) EventName() string     { return "order.updated" }
func (e *OrderUpdatedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderUpdatedEvent) AggregateID() string   { return e.orderID }
func (e *OrderUpdatedEvent) OrderID() string       { return e.orderID }
func (e *OrderUpdatedEvent) Status() Status        { return e.status }

// OrderPaidEvent is recorded when the payment callback confirms payment.
type OrderPaidEvent struct {
	orderID    string
	occurredOn time.Time
}

func NewOrderPaidEvent(orderID string) *OrderPaidEvent {
	return &OrderPaidEvent{
		orderID:    orderID,
		occurredOn: time.Now(),
	}
}

func (e *OrderPaidEvent) EventName() string     { return "order.paid" }
func (e *OrderPaidEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderPaidEvent) AggregateID() string   { return e.orderID }
func (e *OrderPaidEvent) OrderID() string       { return e.orderID }

// OrderDeletedEvent is recorded when an order is hard deleted.
type OrderDeletedEvent struct {
	orderID    string
	userID     string
	occurredOn time.Time
}

func NewOrderDeletedEvent(orderID, userID string) *OrderDeletedEvent {
	return &OrderDeletedEvent{
		orderID:    orderID,
		userID:     userID,
		occurredOn: time.Now(),
	}
}

func (e *OrderDeletedEvent) EventName() string     { return "order.deleted" }
func (e *OrderDeletedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *OrderDeletedEvent) AggregateID() string   { return e.orderID }
func (e *OrderDeletedEvent) OrderID() string       { return e.orderID }
func (e *OrderDeletedEvent) UserID() string        { return e.userID }
func (e *OrderDeletedEvent) DeletedAt() time.Time  { return e.occurredOn }
