// Package events provides the typed publish/subscribe bus that the
// session subsystem and its collaborators register against.
//
// Event kinds are an enumerated type, and each subscription carries a
// numeric priority so that ordering among multiple subscribers is
// deterministic: session resolution runs before anything that reads
// session state, and the store flush runs last. Dispatch is synchronous
// on the publisher's goroutine, which is what a per-request lifecycle
// needs; cross-process fan-out is a different tool.
//
//	bus := events.New()
//	bus.Subscribe(events.Startup, events.PriorityEarly, resolveSession)
//	bus.Subscribe(events.Shutdown, events.PriorityLate, flushSession)
//	err := bus.Trigger(ctx, events.Startup, payload)
//
// Handler errors do not short-circuit dispatch; Publish returns the
// joined error so a failing observer cannot starve the flush handler.
package events
