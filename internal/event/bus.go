package event

import (
	"context"
	"time"
)

// DefaultBufferSize is the capacity of the merged event channel.
const DefaultBufferSize = 256

// Bus merges every producer into one FIFO channel with a single consumer.
// Each producer's events keep their emission order; there is no priority
// between producers.
type Bus struct {
	ch chan Event
}

// NewBus returns a bus with the given buffer capacity.
func NewBus(size int) *Bus {
	if size < 1 {
		size = DefaultBufferSize
	}
	return &Bus{ch: make(chan Event, size)}
}

// Send queues ev, blocking while the buffer is full. It returns false if
// ctx ends first.
func (b *Bus) Send(ctx context.Context, ev Event) bool {
	select {
	case b.ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// TrySend queues ev without blocking.
func (b *Bus) TrySend(ev Event) bool {
	select {
	case b.ch <- ev:
		return true
	default:
		return false
	}
}

// Events is the consumer side.
func (b *Bus) Events() <-chan Event {
	return b.ch
}

// Emitter binds Send to ctx for producers that take a callback.
func (b *Bus) Emitter(ctx context.Context) func(Event) bool {
	return func(ev Event) bool {
		return b.Send(ctx, ev)
	}
}

// Ticker emits a Tick every interval until ctx ends. A tick is skipped
// rather than queued behind a full buffer.
func Ticker(ctx context.Context, b *Bus, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			b.TrySend(Tick{At: now})
		}
	}
}
