package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 64

// Broker is a generic pub/sub event broker. Publishing never blocks: events
// are dropped for subscribers whose buffers are full, since a stalled
// listener must not stall a registry mutation.
type Broker[T any] struct {
	mu         sync.RWMutex
	nextID     int
	subs       map[int]chan Event[T]
	closed     bool
	bufferSize int
}

// NewBroker creates a new broker with the default buffer size (64).
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a new broker with a custom per-subscriber
// buffer size.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:       make(map[int]chan Event[T]),
		bufferSize: size,
	}
}

// Subscribe creates a new subscription channel. The channel is closed and the
// subscription removed when ctx is cancelled or the broker is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Event[T], b.bufferSize)
	b.subs[id] = ch

	go func() {
		<-ctx.Done()
		b.unsubscribe(id)
	}()

	return ch
}

func (b *Broker[T]) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish sends an event to all subscribers without blocking.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Buffer full - drop rather than block the publisher
		}
	}
}

// Close shuts down the broker and all subscriber channels.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
