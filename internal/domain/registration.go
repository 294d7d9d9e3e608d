package domain

import (
	"context"
	"time"
)

// Registration represents one reserved spot on an event, held by one user.
// At most one live registration exists per (user, event) pair; the store
// enforces this with a unique index.
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRegistration returns a Registration. ID is set by the repository on create.
func NewRegistration(userID, eventID string, createdAt time.Time) *Registration {
	return &Registration{
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: createdAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
//
// Create and the Delete* methods are composite, transactional operations:
// each one mutates the registration rows and the owning events'
// registered_participants counter inside a single transaction, so a caller
// never observes a row without its reserved spot or vice versa.
type RegistrationRepository interface {
	// Create reserves a spot on the event and inserts the registration row
	// in one transaction. Returns ErrNotFound if the event does not exist,
	// ErrCapacityExceeded if the event is full, and ErrAlreadyRegistered
	// if the (user, event) unique index rejects the insert.
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	List(ctx context.Context) ([]*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID string) (*Registration, error)
	// DeleteByID removes the registration and releases its spot. Returns
	// ErrNotFound if the id does not resolve.
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserAndEvent removes the pair's registration and releases its
	// spot. Returns ErrNotFound if no live registration exists for the pair.
	DeleteByUserAndEvent(ctx context.Context, userID, eventID string) error
	// DeleteAllByUser removes every registration of the user, decrementing
	// each referenced event's counter by one per removed row. Zero matches
	// is a no-op, not an error. Returns the number of rows removed.
	DeleteAllByUser(ctx context.Context, userID string) (int, error)
	// DeleteAllByEvent removes every registration of the event and resets
	// its counter to zero, as one transaction. Returns the number of rows
	// removed. The caller is responsible for checking the event exists.
	DeleteAllByEvent(ctx context.Context, eventID string) (int, error)
}

// RegistrationService coordinates the registration lifecycle with the
// capacity ledger so the counter and the registration set stay consistent.
type RegistrationService interface {
	Create(ctx context.Context, userID, eventID string) (*Registration, error)
	GetByID(ctx context.Context, id string) (*Registration, error)
	List(ctx context.Context) ([]*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserAndEvent(ctx context.Context, userID, eventID string) error
	DeleteAllByUser(ctx context.Context, userID string) error
	DeleteAllByEvent(ctx context.Context, eventID string) error
}
