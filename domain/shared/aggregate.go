package shared

// AggregateRoot is the entry point of an aggregate. It maintains the
// consistency boundary, carries an optimistic-lock version and records the
// domain events produced by state changes.
type AggregateRoot interface {
	// ID returns the globally unique identity of the aggregate root.
	ID() string

	// Version returns the optimistic concurrency version.
	Version() int

	// PullEvents returns and clears the recorded domain events.
	// The unit of work calls this inside the transaction to persist the
	// events to the outbox together with the state change.
	PullEvents() []DomainEvent
}

// Entity has identity; equality is by ID, not by attribute values.
type Entity interface {
	ID() string
}
