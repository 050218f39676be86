package events

import (
	"fmt"

	"github.com/sandeepkv93/cozy/internal/logger"
)

// RegisterDebugLogger logs bus activity: publishes at debug, drops at warn
// and subscriber panics at error.
func RegisterDebugLogger(bus *Bus) {
	bus.OnPublish(func(ev Event) {
		logger.Debug("event fired", "event", string(ev.Kind), "category", ev.Category)
	})

	bus.OnDrop(func(ev Event) {
		logger.Warn("event dropped: buffer full", "event", string(ev.Kind))
	})

	bus.OnPanic(func(ev Event, recovered any) {
		logger.Error("subscriber panicked", "event", string(ev.Kind), "panic", fmt.Sprint(recovered))
	})
}
