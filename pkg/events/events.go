package events

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// Kind enumerates the event kinds the bus dispatches. Subscribers
// register against a Kind rather than a free-form string so that a typo
// cannot silently create a dead channel.
type Kind string

const (
	// Lifecycle events triggered by the host transport.
	Startup    Kind = "startup"
	CLIStartup Kind = "cli_startup"
	Shutdown   Kind = "shutdown"

	// Identity transitions triggered by application code.
	Login  Kind = "login"
	Logout Kind = "logout"

	// Refresh notifications emitted by external subsystems.
	UserChanged   Kind = "user_changed"
	OutboxChanged Kind = "outbox_changed"

	// Form lifecycle events.
	FormBegin    Kind = "form_begin"
	FormValidate Kind = "form_validate"

	// Events published by this subsystem for downstream subscribers.
	Log     Kind = "log"
	NewUser Kind = "newuser"
)

// Priorities for Subscribe. Lower values run earlier; subscribers with
// equal priority run in registration order.
const (
	PriorityEarly  = 10
	PriorityNormal = 50
	PriorityLate   = 90
)

// Event is a dispatched occurrence: its kind plus a kind-specific
// payload. Payload types are owned by the publishing package.
type Event struct {
	Kind Kind
	Data any
}

// Handler processes one event. Returning an error does not stop
// dispatch to later handlers; Publish joins all handler errors.
type Handler func(ctx context.Context, e Event) error

type subscription struct {
	priority int
	seq      int
	fn       Handler
}

// Bus is a synchronous publish/subscribe dispatcher with deterministic
// ordering. All methods are safe for concurrent use; handlers for one
// Publish call run sequentially on the caller's goroutine.
type Bus struct {
	mu   sync.RWMutex
	subs map[Kind][]subscription
	seq  int
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[Kind][]subscription)}
}

// Subscribe registers a handler for the given kind. Nil handlers are
// ignored.
func (b *Bus) Subscribe(kind Kind, priority int, fn Handler) {
	if fn == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	subs := append(b.subs[kind], subscription{priority: priority, seq: b.seq, fn: fn})
	slices.SortStableFunc(subs, func(a, c subscription) int {
		if a.priority != c.priority {
			return a.priority - c.priority
		}
		return a.seq - c.seq
	})
	b.subs[kind] = subs
}

// Publish dispatches the event to every subscriber of its kind in
// (priority, registration) order. Every handler runs even if an earlier
// one failed; the joined error of all failures is returned.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	subs := b.subs[e.Kind]
	b.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := sub.fn(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Trigger is shorthand for publishing a kind with its payload.
func (b *Bus) Trigger(ctx context.Context, kind Kind, data any) error {
	return b.Publish(ctx, Event{Kind: kind, Data: data})
}
