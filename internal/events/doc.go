// Package events records completed upstream writes for auditing.
//
// Each successful creation produces an Event whose Payload is one of the
// typed records below; the Payload decides the event type. A Bus fans events
// out to subscribed handlers, in subscription order and on the caller's
// goroutine. Events are not persisted and a failing handler never fails the
// request that produced the event.
//
//   - ProductCreated: a product was stored upstream
//   - ClientCreated: a client was stored upstream
//   - DocumentCreated: an invoice document was issued
package events
