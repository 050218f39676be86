package events

import "sync"

type hooks struct {
	mu        sync.RWMutex
	onPublish []func(Event)
	onDrop    []func(Event)
	onPanic   []func(Event, any)
}

// OnPublish registers a hook that fires after every subscriber saw the event.
func (b *Bus) OnPublish(fn func(Event)) {
	b.hooks.mu.Lock()
	b.hooks.onPublish = append(b.hooks.onPublish, fn)
	b.hooks.mu.Unlock()
}

// OnDrop registers a hook that fires when a Feed discards an event.
func (b *Bus) OnDrop(fn func(Event)) {
	b.hooks.mu.Lock()
	b.hooks.onDrop = append(b.hooks.onDrop, fn)
	b.hooks.mu.Unlock()
}

// OnPanic registers a hook that fires when a subscriber panics.
func (b *Bus) OnPanic(fn func(Event, any)) {
	b.hooks.mu.Lock()
	b.hooks.onPanic = append(b.hooks.onPanic, fn)
	b.hooks.mu.Unlock()
}

func (b *Bus) runOnPublish(ev Event) {
	b.hooks.mu.RLock()
	hooks := make([]func(Event), len(b.hooks.onPublish))
	copy(hooks, b.hooks.onPublish)
	b.hooks.mu.RUnlock()
	for _, fn := range hooks {
		fn(ev)
	}
}

func (b *Bus) runOnDrop(ev Event) {
	b.hooks.mu.RLock()
	hooks := make([]func(Event), len(b.hooks.onDrop))
	copy(hooks, b.hooks.onDrop)
	b.hooks.mu.RUnlock()
	for _, fn := range hooks {
		fn(ev)
	}
}

func (b *Bus) runOnPanic(ev Event, recovered any) {
	b.hooks.mu.RLock()
	hooks := make([]func(Event, any), len(b.hooks.onPanic))
	copy(hooks, b.hooks.onPanic)
	b.hooks.mu.RUnlock()
	for _, fn := range hooks {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(ev, recovered)
		}()
	}
}
