// Package events implements a minimal publish/subscribe emitter keyed by
// event name. The VFS uses it to notify UI collaborators (explorer, notepad)
// about file and folder changes.
package events

import (
	"sync"

	"go.uber.org/zap"
)

// Handler receives the payload published with Emit.
type Handler func(data any)

// Subscription identifies a single registration. Function values are not
// comparable in Go, so Off takes the token returned by On instead of the
// callback itself.
type Subscription struct {
	event string
	id    uint64
}

type listener struct {
	id uint64
	fn Handler
}

// Emitter is a synchronous pub/sub hub. Handlers run in registration order on
// the goroutine that calls Emit; a panicking handler is recovered and logged
// and does not prevent the remaining handlers from running.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[string][]listener
	nextID    uint64
	logger    *zap.Logger
}

// New creates an emitter. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{
		listeners: make(map[string][]listener),
		logger:    logger,
	}
}

// On registers a handler for an event and returns its subscription token.
func (e *Emitter) On(event string, fn Handler) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	e.listeners[event] = append(e.listeners[event], listener{id: e.nextID, fn: fn})
	return Subscription{event: event, id: e.nextID}
}

// Off removes a registration. Removing an unknown or already-removed
// subscription is a no-op.
func (e *Emitter) Off(sub Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ls := e.listeners[sub.event]
	for i, l := range ls {
		if l.id == sub.id {
			e.listeners[sub.event] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Emit synchronously invokes every handler registered for the event.
func (e *Emitter) Emit(event string, data any) {
	e.mu.RLock()
	ls := make([]listener, len(e.listeners[event]))
	copy(ls, e.listeners[event])
	e.mu.RUnlock()

	for _, l := range ls {
		e.invoke(event, l, data)
	}
}

func (e *Emitter) invoke(event string, l listener, data any) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("event handler panicked",
				zap.String("event", event),
				zap.Any("panic", r),
			)
		}
	}()
	l.fn(data)
}

// RemoveAllListeners clears every handler for the named events, or every
// handler for every event when called with no arguments.
func (e *Emitter) RemoveAllListeners(events ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(events) == 0 {
		e.listeners = make(map[string][]listener)
		return
	}
	for _, ev := range events {
		delete(e.listeners, ev)
	}
}

// ListenerCount returns the number of handlers registered for an event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners[event])
}
