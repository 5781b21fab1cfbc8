// Package bus provides an in-memory, multicast publish/subscribe channel.
//
// Delivery is synchronous and follows subscription order. Only handlers subscribed when
// Publish is called receive the event; there is no buffering or replay. A handler that
// panics is recovered and logged so the remaining handlers still receive the event.
package bus

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Handler receives published events.
type Handler[E any] func(event E)

type subscriber[E any] struct {
	id      uint64
	handler Handler[E]
}

// Bus delivers events of type E to every live subscriber.
type Bus[E any] struct {
	mu     sync.RWMutex
	subs   []subscriber[E]
	nextID uint64
}

// New creates an empty Bus.
func New[E any]() *Bus[E] {
	return &Bus[E]{}
}

// Subscribe registers handler and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Bus[E]) Subscribe(handler Handler[E]) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber[E]{id: id, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[E]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers event to the subscribers registered at call time, in subscription order.
func (b *Bus[E]) Publish(event E) {
	b.mu.RLock()
	snapshot := make([]subscriber[E], len(b.subs))
	copy(snapshot, b.subs)
	b.mu.RUnlock()

	for _, s := range snapshot {
		deliver(s, event)
	}
}

func deliver[E any](s subscriber[E], event E) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Uint64("subscriber", s.id).
				Str("event", fmt.Sprintf("%v", event)).
				Interface("panic", r).
				Msg("Bus handler panicked")
		}
	}()
	s.handler(event)
}

// Len returns the number of live subscribers.
func (b *Bus[E]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
