package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventmanagement/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns the Postgres-backed EventRepository.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `id, title, location, date, max_participants, registered_participants`

func scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(&e.ID, &e.Title, &e.Location, &e.Date, &e.MaxParticipants, &e.RegisteredParticipants)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, location, date, max_participants, registered_participants)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.Title, e.Location, e.Date, e.MaxParticipants).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY date ASC
		LIMIT $1 OFFSET $2
	`
	events, err := r.listEvents(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE DATE(date) = DATE($1)
		ORDER BY date ASC
	`
	return r.listEvents(ctx, query, date)
}

func (r *eventRepository) ListAvailable(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE registered_participants < max_participants
		ORDER BY date ASC
	`
	return r.listEvents(ctx, query)
}

func (r *eventRepository) Search(ctx context.Context, title, location string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR location ILIKE '%' || $2 || '%')
		ORDER BY date ASC
	`
	return r.listEvents(ctx, query, title, location)
}

func (r *eventRepository) listEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Title, &e.Location, &e.Date, &e.MaxParticipants, &e.RegisteredParticipants); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) UpdateTitle(ctx context.Context, id, title string) error {
	return r.updateField(ctx, `UPDATE events SET title = $2 WHERE id = $1`, id, title)
}

func (r *eventRepository) UpdateLocation(ctx context.Context, id, location string) error {
	return r.updateField(ctx, `UPDATE events SET location = $2 WHERE id = $1`, id, location)
}

func (r *eventRepository) UpdateDate(ctx context.Context, id string, date time.Time) error {
	return r.updateField(ctx, `UPDATE events SET date = $2 WHERE id = $1`, id, date)
}

func (r *eventRepository) updateField(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateMaxParticipants shrinks or grows the capacity, but never below the
// current registered count; the condition and the write are one statement so
// a concurrent reservation cannot slip in between.
func (r *eventRepository) UpdateMaxParticipants(ctx context.Context, id string, maxParticipants int) error {
	if maxParticipants < 1 {
		return fmt.Errorf("max participants must be positive: %w", domain.ErrInvalidInput)
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE events
		SET max_participants = $2
		WHERE id = $1 AND registered_participants <= $2
	`, id, maxParticipants)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 1 {
		return nil
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("max participants below registered count: %w", domain.ErrInvalidInput)
}

// Delete removes the event only while no registration references it.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM events
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1)
	`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 1 {
		return nil
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrEventHasRegistrations
}
