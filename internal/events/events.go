// Package events is a small synchronous publish/subscribe bus used to tell
// views that tracker state changed.
package events

import (
	"sync"
	"time"
)

type Kind string

// Keep list sorted A-Z
const (
	KindDayReset       Kind = "day.reset"
	KindProfileChanged Kind = "profile.changed"
	KindTasksChanged   Kind = "tasks.changed"
	KindTimerChanged   Kind = "timer.changed"
	KindTimerExpired   Kind = "timer.expired"
)

type Event struct {
	Kind     Kind
	Category string
	TaskID   string
	At       time.Time
}

type subscriber struct {
	id int
	fn func(Event)
}

// Bus delivers every published event to all subscribers in subscription
// order, on the publisher's goroutine.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID int

	hooks hooks
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(s.fn, ev)
	}
	b.runOnPublish(ev)
}

func (b *Bus) deliver(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.runOnPanic(ev, r)
		}
	}()
	fn(ev)
}
