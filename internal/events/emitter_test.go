package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitInRegistrationOrder(t *testing.T) {
	e := New(nil)

	var order []int
	e.On("change", func(any) { order = append(order, 1) })
	e.On("change", func(any) { order = append(order, 2) })
	e.On("change", func(any) { order = append(order, 3) })

	e.Emit("change", nil)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEmitPassesPayload(t *testing.T) {
	e := New(nil)

	var got any
	e.On("fileCreated", func(data any) { got = data })
	e.Emit("fileCreated", "payload")

	assert.Equal(t, "payload", got)
}

func TestOffRemovesSingleSubscription(t *testing.T) {
	e := New(nil)

	var a, b int
	subA := e.On("change", func(any) { a++ })
	e.On("change", func(any) { b++ })

	e.Emit("change", nil)
	e.Off(subA)
	e.Emit("change", nil)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestOffUnknownSubscriptionIsNoop(t *testing.T) {
	e := New(nil)
	sub := e.On("change", func(any) {})
	e.Off(sub)

	assert.NotPanics(t, func() {
		e.Off(sub)
		e.Off(Subscription{event: "never", id: 999})
	})
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	e := New(nil)

	var ran bool
	e.On("change", func(any) { panic("boom") })
	e.On("change", func(any) { ran = true })

	assert.NotPanics(t, func() { e.Emit("change", nil) })
	assert.True(t, ran)
}

func TestRemoveAllListeners(t *testing.T) {
	e := New(nil)

	e.On("a", func(any) {})
	e.On("a", func(any) {})
	e.On("b", func(any) {})

	e.RemoveAllListeners("a")
	assert.Equal(t, 0, e.ListenerCount("a"))
	assert.Equal(t, 1, e.ListenerCount("b"))

	e.RemoveAllListeners()
	assert.Equal(t, 0, e.ListenerCount("b"))
}

func TestEmitWithoutListeners(t *testing.T) {
	e := New(nil)
	assert.NotPanics(t, func() { e.Emit("nothing", 42) })
}
