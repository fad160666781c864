package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types, one per Payload implementation.
const (
	TypeProductCreated  = "product.created"
	TypeClientCreated   = "client.created"
	TypeDocumentCreated = "document.created"
)

// Payload is the typed body of an Event.
type Payload interface {
	EventType() string
}

// ProductCreated follows a successful POST /products upstream.
type ProductCreated struct {
	UpstreamID any    `json:"upstream_id"`
	Reference  string `json:"reference"`
	Title      string `json:"title"`
}

func (ProductCreated) EventType() string { return TypeProductCreated }

// ClientCreated follows a successful POST /clients upstream.
type ClientCreated struct {
	UpstreamID any `json:"upstream_id"`
}

func (ClientCreated) EventType() string { return TypeClientCreated }

// DocumentCreated follows a successful POST /documents upstream. Values are
// copied from the upstream response and may be nil.
type DocumentCreated struct {
	UpstreamID   any `json:"upstream_id"`
	DocumentType any `json:"document_type"`
	Number       any `json:"number"`
	ClientID     any `json:"client_id"`
}

func (DocumentCreated) EventType() string { return TypeDocumentCreated }

// Event is one audit record.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Payload    Payload   `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New stamps payload with a fresh ID and the current UTC time.
func New(payload Payload) *Event {
	return &Event{
		ID:         uuid.New(),
		Type:       payload.EventType(),
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Handler consumes events.
type Handler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event *Event) error

func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// Emitter is what workflows publish to.
type Emitter interface {
	Emit(ctx context.Context, event *Event) error
}
