package telemetry

import (
	"fmt"
	"sync"
)

// SimpleBroker implements the Broker interface.
// subscribers is a map where keys are subscriber IDs and values are channels
// for receiving step events.
type SimpleBroker struct {
	subscribers map[string]chan<- StepEvent
	mu          sync.RWMutex
}

// NewBroker creates a new step-event broker.
func NewBroker() *SimpleBroker {
	return &SimpleBroker{
		subscribers: make(map[string]chan<- StepEvent),
	}
}

// Publish delivers the event to every subscriber. Sends are non-blocking: a
// subscriber whose channel is full surfaces as an error rather than stalling
// the simulation loop.
func (b *SimpleBroker) Publish(ev StepEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- ev:
			// Event delivered
		default:
			return fmt.Errorf("subscriber %s's channel is full", id)
		}
	}
	return nil
}

// Subscribe registers a channel to receive events.
func (b *SimpleBroker) Subscribe(id string, ch chan<- StepEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; exists {
		return fmt.Errorf("subscriber %s is already registered", id)
	}

	b.subscribers[id] = ch
	return nil
}

// Unsubscribe removes a subscription.
func (b *SimpleBroker) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; !exists {
		return fmt.Errorf("subscriber %s is not registered", id)
	}

	delete(b.subscribers, id)
	return nil
}

// Reset drops all subscriptions.
func (b *SimpleBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make(map[string]chan<- StepEvent)
}
