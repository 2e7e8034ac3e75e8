package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversInOrder(t *testing.T) {
	bus := NewBus(16)

	var mu sync.Mutex
	var got []string
	bus.Subscribe(func(e Event) {
		mu.Lock()
		got = append(got, e.Name)
		mu.Unlock()
	})

	bus.Start()
	bus.Publish(Event{Name: NewDonation, Payload: map[string]any{"donation_id": "d1"}})
	bus.Publish(Event{Name: DonationClaimed, Payload: map[string]any{"donation_id": "d1"}})
	bus.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, []string{NewDonation, DonationClaimed}, got)
}

func TestBus_StopDrainsPendingEvents(t *testing.T) {
	bus := NewBus(8)

	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	for i := 0; i < 5; i++ {
		bus.Publish(Event{Name: NewDonation})
	}
	bus.Start()
	bus.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, count)
}

func TestBus_PublishNeverBlocksWhenFull(t *testing.T) {
	bus := NewBus(1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(Event{Name: NewDonation})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}
}

func TestBus_FanOutToMultipleSubscribers(t *testing.T) {
	bus := NewBus(4)

	var mu sync.Mutex
	hits := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe(func(Event) {
			mu.Lock()
			hits++
			mu.Unlock()
		})
	}

	bus.Start()
	bus.Publish(Event{Name: DonationClaimed})
	bus.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, hits)
}
