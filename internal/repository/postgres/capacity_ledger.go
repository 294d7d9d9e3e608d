package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"eventmanagement/internal/domain"
)

// querier is satisfied by *sql.DB and *sql.Tx, so the counter statements
// below can run standalone or inside a registration transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// All writes to events.registered_participants go through the three
// functions in this file. Each one is a single conditional statement: the
// capacity check and the increment are one indivisible operation on the
// database side, never a read-then-write in Go.

// reserveSpot increments the counter only while it is below the maximum.
// Zero affected rows means either a missing event or a full one; a follow-up
// existence check disambiguates.
func reserveSpot(ctx context.Context, q querier, eventID string) error {
	res, err := q.ExecContext(ctx, `
		UPDATE events
		SET registered_participants = registered_participants + 1
		WHERE id = $1 AND registered_participants < max_participants
	`, eventID)
	if err != nil {
		return fmt.Errorf("reserve spot: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve spot: %w", err)
	}
	if rows == 1 {
		return nil
	}
	var exists bool
	err = q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("reserve spot: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrCapacityExceeded
}

// releaseSpots decrements the counter by count, floored at zero.
func releaseSpots(ctx context.Context, q querier, eventID string, count int) error {
	res, err := q.ExecContext(ctx, `
		UPDATE events
		SET registered_participants = GREATEST(registered_participants - $2, 0)
		WHERE id = $1
	`, eventID, count)
	if err != nil {
		return fmt.Errorf("release spots: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("release spots: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// resetSpots zeroes the counter. Only called from the transaction that also
// deletes every registration row of the event.
func resetSpots(ctx context.Context, q querier, eventID string) error {
	res, err := q.ExecContext(ctx, `
		UPDATE events
		SET registered_participants = 0
		WHERE id = $1
	`, eventID)
	if err != nil {
		return fmt.Errorf("reset spots: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reset spots: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Transient-contention retry policy. Terminal outcomes (not found, full,
// already registered) are never retried.
const (
	maxAttempts  = 3
	retryBackoff = 25 * time.Millisecond
)

func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

// withRetry runs fn up to maxAttempts times, backing off between attempts,
// retrying only on serialization/deadlock failures.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn()
		if err == nil || !isRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(1<<attempt)):
		}
	}
	return err
}

type capacityLedger struct {
	DB *sql.DB
}

// NewCapacityLedger returns the CapacityLedger backed by the events table.
func NewCapacityLedger(db *sql.DB) domain.CapacityLedger {
	return &capacityLedger{DB: db}
}

func (l *capacityLedger) TryReserve(ctx context.Context, eventID string) error {
	return withRetry(ctx, func() error {
		return reserveSpot(ctx, l.DB, eventID)
	})
}

func (l *capacityLedger) Release(ctx context.Context, eventID string, count int) error {
	if count < 1 {
		return fmt.Errorf("release count must be positive, got %d: %w", count, domain.ErrInvalidInput)
	}
	return withRetry(ctx, func() error {
		return releaseSpots(ctx, l.DB, eventID, count)
	})
}

func (l *capacityLedger) ResetToZero(ctx context.Context, eventID string) error {
	return withRetry(ctx, func() error {
		return resetSpots(ctx, l.DB, eventID)
	})
}

func (l *capacityLedger) IsAvailable(ctx context.Context, eventID string) (bool, error) {
	var available bool
	err := l.DB.QueryRowContext(ctx, `
		SELECT registered_participants < max_participants
		FROM events
		WHERE id = $1
	`, eventID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("check availability: %w", err)
	}
	return available, nil
}
