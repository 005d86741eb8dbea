package po

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

// OutboxEventPO is one row of the transactional outbox. Events land here in
// the same transaction as the state change and are published asynchronously.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`
	Payload     string    `gorm:"type:json;not null"`
	Status      string    `gorm:"size:20;default:PENDING;not null"`
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus is the outbox row lifecycle.
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent serializes a domain event into an outbox row.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializePayload(event)
	if err != nil {
		return nil, err
	}

	return &OutboxEventPO{
		ID:          uuid.New().String(),
		AggregateID: event.AggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		RetryCount:  0,
	}, nil
}

// serializePayload renders the wire shape per event type. Consumers depend
// on these field names; changing them is a contract change.
func serializePayload(event shared.DomainEvent) (string, error) {
	var body any

	switch e := event.(type) {
	case *order.OrderCreatedEvent:
		body = map[string]any{
			"order_id":     e.OrderID(),
			"user_id":      e.UserID(),
			"total_amount": e.TotalAmount().Amount(),
			"currency":     e.TotalAmount().Currency(),
			"created_at":   e.OccurredOn().UTC().Format(time.RFC3339Nano),
		}
	case *order.OrderUpdatedEvent:
		body = map[string]any{
			"order_id":   e.OrderID(),
			"status":     string(e.Status()),
			"updated_at": e.OccurredOn().UTC().Format(time.RFC3339Nano),
		}
	case *order.OrderPaidEvent:
		body = map[string]any{
			"order_id": e.OrderID(),
			"paid_at":  e.OccurredOn().UTC().Format(time.RFC3339Nano),
		}
	case *order.OrderDeletedEvent:
		body = map[string]any{
			"order_id":   e.OrderID(),
			"user_id":    e.UserID(),
			"deleted_at": e.DeletedAt().UTC().Format(time.RFC3339Nano),
		}
	default:
		return "", fmt.Errorf("unknown event type %q", event.EventName())
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to serialize event %s: %w", event.EventName(), err)
	}
	return string(raw), nil
}
