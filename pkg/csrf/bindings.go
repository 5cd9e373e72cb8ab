package csrf

import (
	"context"
	"html/template"
	"net/url"

	"github.com/gflauder/PeerReviewCore/pkg/events"
	"github.com/gflauder/PeerReviewCore/pkg/session"
)

// FormBeginPayload accompanies the form_begin event; the guard fills
// Markup.
type FormBeginPayload struct {
	Session *session.Session
	Name    string
	Markup  template.HTML
}

// FormValidatePayload accompanies the form_validate event; the guard
// consumes the token and reports the outcome in OK.
type FormValidatePayload struct {
	Session *session.Session
	Name    string
	Form    url.Values
	OK      bool
}

// Bind registers the guard's handlers for the form lifecycle events.
func (g *Guard) Bind(bus *events.Bus) {
	bus.Subscribe(events.FormBegin, events.PriorityNormal, func(ctx context.Context, e events.Event) error {
		p, ok := e.Data.(*FormBeginPayload)
		if !ok {
			return ErrInvalidPayload
		}
		markup, err := g.Begin(p.Session, p.Name)
		if err != nil {
			return err
		}
		p.Markup = markup
		return nil
	})

	bus.Subscribe(events.FormValidate, events.PriorityNormal, func(ctx context.Context, e events.Event) error {
		p, ok := e.Data.(*FormValidatePayload)
		if !ok {
			return ErrInvalidPayload
		}
		p.OK = g.Validate(p.Session, p.Name, p.Form)
		return nil
	})
}
