package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gflauder/PeerReviewCore/pkg/events"
)

// Storage persists audit events.
type Storage interface {
	Store(ctx context.Context, event Event) error
}

// Logger records audit events.
type Logger interface {
	// Log stamps ID and timestamp on the event and stores it.
	Log(ctx context.Context, event Event) error

	// Bind subscribes the logger to the bus's "log" event kind so that
	// publishers need not depend on the audit implementation.
	Bind(bus *events.Bus)
}

type logger struct {
	storage Storage
}

// NewLogger creates an audit logger backed by the given storage.
func NewLogger(storage Storage) Logger {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}
	return &logger{storage: storage}
}

func (l *logger) Log(ctx context.Context, event Event) error {
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()

	if err := event.Validate(); err != nil {
		return err
	}

	return l.storage.Store(ctx, event)
}

func (l *logger) Bind(bus *events.Bus) {
	bus.Subscribe(events.Log, events.PriorityNormal, func(ctx context.Context, e events.Event) error {
		event, ok := e.Data.(Event)
		if !ok {
			return ErrInvalidPayload
		}
		return l.Log(ctx, event)
	})
}
