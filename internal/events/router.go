package events

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the default channel buffer size for subscribers.
const DefaultBufferSize = 100

// Emitter accepts events from producers. Router implements it; producers
// that only publish should depend on this interface.
type Emitter interface {
	Emit(event Event)
}

// Router fans events out from the shell session to every subscriber.
// Delivery is non-blocking: a subscriber whose buffer is full misses the event.
type Router struct {
	mu         sync.RWMutex
	subs       map[<-chan Event]chan Event
	order      []chan Event
	bufferSize int
	closed     bool
	dropped    atomic.Int64
}

// NewRouter creates a router whose Subscribe channels hold bufferSize events.
// Non-positive sizes fall back to DefaultBufferSize.
func NewRouter(bufferSize int) *Router {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Router{
		subs:       make(map[<-chan Event]chan Event),
		bufferSize: bufferSize,
	}
}

// Emit publishes an event to all subscribers in subscription order.
// Safe for concurrent use and a no-op after Close.
func (r *Router) Emit(event Event) {
	if event == nil {
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	for _, ch := range r.order {
		select {
		case ch <- event:
		default:
			r.dropped.Add(1)
			slog.Warn("event dropped: subscriber channel full",
				"event_type", event.Type(),
				"source", event.Source(),
			)
		}
	}
}

// Subscribe returns a channel with the router's default buffer size.
func (r *Router) Subscribe() <-chan Event {
	return r.SubscribeBuffered(r.bufferSize)
}

// SubscribeBuffered returns a channel with the given buffer size.
// The channel is closed by Unsubscribe or Close. After Close it returns an
// already-closed channel.
func (r *Router) SubscribeBuffered(size int) <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, size)
	r.subs[ch] = ch
	r.order = append(r.order, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
// Unknown or already removed channels are ignored.
func (r *Router) Unsubscribe(ch <-chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[ch]
	if !ok {
		return
	}
	delete(r.subs, ch)
	for i, c := range r.order {
		if c == sub {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	close(sub)
}

// Close closes every subscriber channel. Safe to call more than once.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for _, ch := range r.order {
		close(ch)
	}
	r.order = nil
	r.subs = make(map[<-chan Event]chan Event)
}

// Dropped returns how many deliveries were skipped because a subscriber was full.
func (r *Router) Dropped() int64 {
	return r.dropped.Load()
}
