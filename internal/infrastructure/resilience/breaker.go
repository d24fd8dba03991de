// Package resilience implements a circuit breaker. The AI client wraps the
// OpenAI provider with one so a struggling upstream degrades to fast local
// fallbacks instead of queueing thirty-second timeouts.
package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker rejects calls outright.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the breaker state machine position.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings tunes the breaker. Zero values get defaults.
type Settings struct {
	// FailureThreshold is the number of consecutive failures that trips
	// the breaker open.
	FailureThreshold uint32
	// Cooldown is how long the breaker stays open before allowing a probe.
	Cooldown time.Duration
	// OnStateChange, when set, observes every transition.
	OnStateChange func(name string, from, to State)
}

// Breaker rejects calls after repeated failures, then lets a single probe
// through after a cooldown; a successful probe closes it again.
type Breaker struct {
	name     string
	settings Settings

	mu       sync.Mutex
	state    State
	failures uint32
	openedAt time.Time
	probing  bool
}

// New creates a breaker with the given settings.
func New(name string, settings Settings) *Breaker {
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 5
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = 30 * time.Second
	}
	return &Breaker{name: name, settings: settings}
}

// Name returns the breaker's name.
func (b *Breaker) Name() string { return b.name }

// State returns the current state, accounting for cooldown expiry.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentStateLocked(time.Now())
}

// Execute runs req if the breaker allows it. A panic inside req counts as a
// failure and is re-raised.
func (b *Breaker) Execute(req func() (any, error)) (any, error) {
	if err := b.before(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			b.after(false)
			panic(r)
		}
	}()

	result, err := req()
	b.after(err == nil)
	return result, err
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentStateLocked(time.Now()) {
	case StateClosed:
		return nil
	case StateHalfOpen:
		if b.probing {
			return ErrCircuitOpen
		}
		b.probing = true
		return nil
	default:
		return ErrCircuitOpen
	}
}

func (b *Breaker) after(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.currentStateLocked(time.Now())
	b.probing = false

	if success {
		b.failures = 0
		if state != StateClosed {
			b.transitionLocked(state, StateClosed)
		}
		return
	}

	b.failures++
	if state == StateHalfOpen || b.failures >= b.settings.FailureThreshold {
		b.openedAt = time.Now()
		if state != StateOpen {
			b.transitionLocked(state, StateOpen)
		}
		b.state = StateOpen
	}
}

// currentStateLocked folds cooldown expiry into the stored state.
func (b *Breaker) currentStateLocked(now time.Time) State {
	if b.state == StateOpen && now.Sub(b.openedAt) >= b.settings.Cooldown {
		b.transitionLocked(StateOpen, StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) transitionLocked(from, to State) {
	b.state = to
	if from != to && b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, from, to)
	}
}
