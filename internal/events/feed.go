package events

import (
	"sync"
	"sync/atomic"
)

// Feed forwards bus events into a buffered channel. Sends never block the
// publisher; events that do not fit are counted and reported through OnDrop.
type Feed struct {
	ch          chan Event
	dropped     atomic.Uint64
	unsubscribe func()
	closeOnce   sync.Once
	mu          sync.RWMutex
	closed      bool
}

func Channel(bus *Bus, size int) *Feed {
	if size <= 0 {
		size = 1
	}
	f := &Feed{ch: make(chan Event, size)}
	f.unsubscribe = bus.Subscribe(func(ev Event) {
		f.mu.RLock()
		defer f.mu.RUnlock()
		if f.closed {
			return
		}
		select {
		case f.ch <- ev:
		default:
			f.dropped.Add(1)
			bus.runOnDrop(ev)
		}
	})
	return f
}

func (f *Feed) C() <-chan Event {
	return f.ch
}

func (f *Feed) Dropped() uint64 {
	return f.dropped.Load()
}

// Close unsubscribes and closes the channel.
func (f *Feed) Close() {
	f.closeOnce.Do(func() {
		f.unsubscribe()
		f.mu.Lock()
		f.closed = true
		close(f.ch)
		f.mu.Unlock()
	})
}
