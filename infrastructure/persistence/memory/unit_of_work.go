package memory

import (
	"context"
	"sync"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

// UnitOfWork is an in-memory shared.UnitOfWork. There is no real transaction;
// fn runs directly and events pulled from registered aggregates are kept so
// tests (and the memory database mode) can observe what would have gone to
// the outbox.
type UnitOfWork struct {
	mu         sync.Mutex
	aggregates []shared.AggregateRoot
	published  []shared.DomainEvent
}

// NewUnitOfWork creates an in-memory unit of work.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	u.aggregates = u.aggregates[:0]
	u.mu.Unlock()

	if err := fn(ctx); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for _, agg := range u.aggregates {
		u.published = append(u.published, agg.PullEvents()...)
	}
	return nil
}

func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.aggregates = append(u.aggregates, aggregate)
}

// Events returns a copy of everything collected so far.
func (u *UnitOfWork) Events() []shared.DomainEvent {
	u.mu.Lock()
	defer u.mu.Unlock()
	events := make([]shared.DomainEvent, len(u.published))
	copy(events, u.published)
	return events
}

// EventsNamed returns the collected events with the given name.
func (u *UnitOfWork) EventsNamed(name string) []shared.DomainEvent {
	var result []shared.DomainEvent
	for _, event := range u.Events() {
		if event.EventName() == name {
			result = append(result, event)
		}
	}
	return result
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
