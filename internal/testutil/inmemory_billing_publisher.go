package testutil

import (
	"context"
	"sync"

	"github.com/glowdesk/glowdesk/internal/publisher"
	"github.com/glowdesk/glowdesk/internal/types"
)

var _ publisher.BillingEventPublisher = (*InMemoryBillingPublisher)(nil)

// InMemoryBillingPublisher captures billing events so tests can assert on
// what the services emitted
type InMemoryBillingPublisher struct {
	mu     sync.RWMutex
	events []*types.BillingEvent
}

// NewInMemoryBillingPublisher creates a new capturing billing publisher
func NewInMemoryBillingPublisher() *InMemoryBillingPublisher {
	return &InMemoryBillingPublisher{
		events: make([]*types.BillingEvent, 0),
	}
}

func (p *InMemoryBillingPublisher) PublishBillingEvent(ctx context.Context, event *types.BillingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *InMemoryBillingPublisher) Close() error {
	return nil
}

// GetEvents returns all captured events
func (p *InMemoryBillingPublisher) GetEvents() []*types.BillingEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*types.BillingEvent, len(p.events))
	copy(out, p.events)
	return out
}

// EventsNamed returns the captured events with the given name
func (p *InMemoryBillingPublisher) EventsNamed(name types.BillingEventName) []*types.BillingEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []*types.BillingEvent
	for _, e := range p.events {
		if e.EventName == name {
			out = append(out, e)
		}
	}
	return out
}

// Clear drops all captured events
func (p *InMemoryBillingPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = make([]*types.BillingEvent, 0)
}
