package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is a published message. Events are immutable once created.
type Event struct {
	// Topic is the hierarchical event type.
	Topic Topic

	// Payload contains the event-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// NewEvent creates a new event with the given topic and payload.
func NewEvent(t Topic, payload any, source string) Event {
	return Event{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// Handler processes a delivered event.
type Handler func(ctx context.Context, ev Event) error
