package events

import (
	"sync"
	"sync/atomic"
)

// Name identifies an event, e.g. "items:changed".
type Name string

// String returns the event name as a string.
func (n Name) String() string {
	return string(n)
}

// Handler receives an event payload.
type Handler func(payload any)

// Listener receives the event name alongside the payload.
type Listener func(name Name, payload any)

// Emitter is the publishing side of the bus.
// Application state and views depend on this rather than on *Bus.
type Emitter interface {
	Emit(name Name, payload any)
}

// Subscription is the handle returned by the subscribe methods.
// The zero value refers to no subscription.
type Subscription struct {
	id uint64
}

// Valid reports whether the handle refers to a registration.
func (s Subscription) Valid() bool {
	return s.id != 0
}

// subscriber is one registration on the bus.
type subscriber struct {
	id       uint64
	name     Name    // exact match; empty when pattern is set
	pattern  Pattern // nil for exact-name registrations
	listener Listener
	active   atomic.Bool
}

func (s *subscriber) matches(name Name) bool {
	if s.pattern != nil {
		return s.pattern.Match(name)
	}
	return s.name == name
}

// Bus is a synchronous, reentrant event bus.
// Subscribing and unsubscribing are safe for concurrent use; delivery runs
// on the goroutine that calls Emit.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscriber
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// On subscribes handler to events named exactly name.
func (b *Bus) On(name Name, handler Handler) Subscription {
	if name == "" || handler == nil {
		return Subscription{}
	}
	return b.add(&subscriber{
		name:     name,
		listener: func(_ Name, payload any) { handler(payload) },
	})
}

// OnPattern subscribes handler to every event whose name matches pattern.
func (b *Bus) OnPattern(pattern Pattern, handler Handler) Subscription {
	if pattern == nil || handler == nil {
		return Subscription{}
	}
	return b.add(&subscriber{
		pattern:  pattern,
		listener: func(_ Name, payload any) { handler(payload) },
	})
}

// OnAll subscribes listener to every event.
func (b *Bus) OnAll(listener Listener) Subscription {
	if listener == nil {
		return Subscription{}
	}
	return b.add(&subscriber{
		pattern:  Any,
		listener: listener,
	})
}

func (b *Bus) add(s *subscriber) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s.id = b.nextID
	s.active.Store(true)
	b.subs = append(b.subs, s)

	return Subscription{id: s.id}
}

// Off removes a subscription. It reports whether the subscription existed.
func (b *Bus) Off(sub Subscription) bool {
	if !sub.Valid() {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == sub.id {
			s.active.Store(false)
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// OffAll removes every subscription.
func (b *Bus) OffAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subs {
		s.active.Store(false)
	}
	b.subs = nil
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Emit delivers payload to every matching subscriber, in registration order.
func (b *Bus) Emit(name Name, payload any) {
	b.mu.RLock()
	snapshot := make([]*subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.RUnlock()

	for _, s := range snapshot {
		// A handler earlier in this pass may have unsubscribed s.
		if !s.active.Load() || !s.matches(name) {
			continue
		}
		s.listener(name, payload)
	}
}

// Trigger returns a function that emits name with whatever payload it is given.
func (b *Bus) Trigger(name Name) func(payload any) {
	return func(payload any) {
		b.Emit(name, payload)
	}
}

// Listen subscribes fn to name for payloads of type T. Other payload types are ignored.
func Listen[T any](b *Bus, name Name, fn func(T)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	return b.On(name, func(payload any) {
		if v, ok := payload.(T); ok {
			fn(v)
		}
	})
}
