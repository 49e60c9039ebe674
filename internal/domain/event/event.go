// Package event defines immutable domain event records and an in-process
// recorder. Events are constructed by the service layer on state changes;
// dispatch to external consumers stays out of the entity layer.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable notification record describing a state change.
type Event interface {
	// EventID is a unique identifier for this occurrence.
	EventID() string
	// Type is the event type tag, e.g. "OrderCreated".
	Type() string
	// OccurredAt is when the event was constructed.
	OccurredAt() time.Time
}

// Base carries the identity fields shared by all events.
type Base struct {
	id         string
	eventType  string
	occurredAt time.Time
}

func newBase(eventType string) Base {
	return Base{
		id:         uuid.NewString(),
		eventType:  eventType,
		occurredAt: time.Now(),
	}
}

func (b Base) EventID() string        { return b.id }
func (b Base) Type() string           { return b.eventType }
func (b Base) OccurredAt() time.Time  { return b.occurredAt }

// Recorder receives completed domain events. Implementations decide whether
// to buffer, log, or forward them; the domain layer only hands them over.
type Recorder interface {
	Record(e Event)
}

// Discard is a Recorder that drops every event.
type Discard struct{}

func (Discard) Record(Event) {}
