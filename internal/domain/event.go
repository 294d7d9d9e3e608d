package domain

import (
	"context"
	"time"
)

// Event represents a capacity-limited event.
// Invariant: 0 <= RegisteredParticipants <= MaxParticipants, and
// RegisteredParticipants equals the number of live registrations for the
// event. The counter is mutated only through the CapacityLedger.
// swagger:model Event
type Event struct {
	ID                     string    `json:"id"`
	Title                  string    `json:"title"`
	Location               string    `json:"location"`
	Date                   time.Time `json:"date"`
	MaxParticipants        int       `json:"max_participants"`
	RegisteredParticipants int       `json:"registered_participants"`
}

// NewEvent returns an Event with zero registered participants. ID is set by
// the repository on create.
func NewEvent(title, location string, date time.Time, maxParticipants int) *Event {
	return &Event{
		Title:           title,
		Location:        location,
		Date:            date,
		MaxParticipants: maxParticipants,
	}
}

// EventRepository defines the interface for event storage.
// It never writes registered_participants; that column belongs to the
// CapacityLedger.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Event, error)
	ListAvailable(ctx context.Context) ([]*Event, error)
	Search(ctx context.Context, title, location string) ([]*Event, error)
	UpdateTitle(ctx context.Context, id, title string) error
	UpdateLocation(ctx context.Context, id, location string) error
	UpdateDate(ctx context.Context, id string, date time.Time) error
	// UpdateMaxParticipants fails with ErrInvalidInput when the new maximum
	// is below the current registered count.
	UpdateMaxParticipants(ctx context.Context, id string, maxParticipants int) error
	// Delete fails with ErrEventHasRegistrations while live registrations
	// reference the event.
	Delete(ctx context.Context, id string) error
}

// CapacityLedger owns the registered_participants counter. It is the only
// component allowed to mutate it, and every mutation is a single atomic
// statement against the store, never a read-then-write in application code.
type CapacityLedger interface {
	// TryReserve atomically increments the counter if and only if it is
	// strictly below the maximum. Returns ErrNotFound if the event does not
	// exist and ErrCapacityExceeded if the event is full.
	TryReserve(ctx context.Context, eventID string) error
	// Release atomically decrements the counter by count, floored at zero.
	Release(ctx context.Context, eventID string, count int) error
	// ResetToZero unconditionally zeroes the counter. Only meaningful inside
	// the same transaction that removes every registration of the event;
	// RegistrationRepository.DeleteAllByEvent is the transactional caller.
	ResetToZero(ctx context.Context, eventID string) error
	// IsAvailable reports whether the event currently has a free spot.
	// Advisory only: callers must still go through TryReserve, since the
	// answer can be stale by the time a reservation is attempted.
	IsAvailable(ctx context.Context, eventID string) (bool, error)
}

// EventService defines event CRUD and query operations.
type EventService interface {
	Create(ctx context.Context, title, location string, date time.Time, maxParticipants int) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Event, error)
	ListAvailable(ctx context.Context) ([]*Event, error)
	Search(ctx context.Context, title, location string) ([]*Event, error)
	IsAvailable(ctx context.Context, id string) (bool, error)
	UpdateTitle(ctx context.Context, id, title string) error
	UpdateLocation(ctx context.Context, id, location string) error
	UpdateDate(ctx context.Context, id string, date time.Time) error
	UpdateMaxParticipants(ctx context.Context, id string, maxParticipants int) error
	Delete(ctx context.Context, id string) error
}
