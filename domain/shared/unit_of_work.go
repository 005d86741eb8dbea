package shared

import "context"

// UnitOfWork manages a transaction boundary and collects domain events from
// the aggregates touched inside it. Registered aggregates have their events
// pulled and written to the outbox before commit.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// OutboxRepository persists domain events for asynchronous publishing.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
