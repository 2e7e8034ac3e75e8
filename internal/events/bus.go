package events

import (
	"log/slog"
	"sync"
)

// Event names emitted by the donation core.
const (
	NewDonation     = "new_donation"
	DonationClaimed = "donation_claimed"
)

// Event is an outbound notification. Payload is a flat key/value snapshot;
// delivery and fan-out belong to whatever subscribes, not to the producer.
type Event struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}

// Publisher is the producer-side contract services depend on.
type Publisher interface {
	Publish(e Event)
}

// Bus is an in-process, buffered event channel. Producers enqueue without
// blocking; a single dispatch goroutine invokes subscribers in order.
type Bus struct {
	ch       chan Event
	done     chan struct{}
	wg       sync.WaitGroup
	mu       sync.RWMutex
	handlers []func(Event)
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 64
	}
	return &Bus{
		ch:   make(chan Event, buffer),
		done: make(chan struct{}),
	}
}

// Subscribe registers a handler. Handlers registered after Start still
// receive subsequent events.
func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	b.handlers = append(b.handlers, fn)
	b.mu.Unlock()
}

// Start launches the dispatch loop.
func (b *Bus) Start() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case e := <-b.ch:
				b.dispatch(e)
			case <-b.done:
				// Drain whatever was enqueued before shutdown.
				for {
					select {
					case e := <-b.ch:
						b.dispatch(e)
					default:
						return
					}
				}
			}
		}
	}()
}

// Publish enqueues an event without blocking the caller. A full buffer
// drops the event and logs it; emission is best-effort by contract.
func (b *Bus) Publish(e Event) {
	select {
	case b.ch <- e:
	default:
		slog.Warn("event bus full, dropping event", "event", e.Name)
	}
}

// Stop flushes pending events and stops the dispatch loop.
func (b *Bus) Stop() {
	close(b.done)
	b.wg.Wait()
}

func (b *Bus) dispatch(e Event) {
	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(e)
	}
}
