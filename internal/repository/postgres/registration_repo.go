package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventmanagement/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository returns the Postgres-backed RegistrationRepository.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Create reserves a spot and inserts the registration row in one
// transaction. If the insert hits the (user_id, event_id) unique index the
// rollback also undoes the reservation, so no spot is ever leaked.
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	return withRetry(ctx, func() error {
		return r.createOnce(ctx, reg)
	})
}

func (r *registrationRepository) createOnce(ctx context.Context, reg *domain.Registration) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = reserveSpot(ctx, tx, reg.EventID); err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO registrations (user_id, event_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, reg.UserID, reg.EventID, reg.CreatedAt).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, event_id, created_at
		FROM registrations
		WHERE id = $1
	`, id).Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) List(ctx context.Context) ([]*domain.Registration, error) {
	return r.list(ctx, `
		SELECT id, user_id, event_id, created_at
		FROM registrations
		ORDER BY created_at DESC
	`)
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return r.list(ctx, `
		SELECT id, user_id, event_id, created_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return r.list(ctx, `
		SELECT id, user_id, event_id, created_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY created_at DESC
	`, eventID)
}

func (r *registrationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.Registration, error) {
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, event_id, created_at
		FROM registrations
		WHERE user_id = $1 AND event_id = $2
	`, userID, eventID).Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) DeleteByID(ctx context.Context, id string) error {
	return withRetry(ctx, func() (err error) {
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		var eventID string
		err = tx.QueryRowContext(ctx, `
			DELETE FROM registrations
			WHERE id = $1
			RETURNING event_id
		`, id).Scan(&eventID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("delete registration: %w", err)
		}

		if err = releaseSpots(ctx, tx, eventID, 1); err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

func (r *registrationRepository) DeleteByUserAndEvent(ctx context.Context, userID, eventID string) error {
	return withRetry(ctx, func() (err error) {
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		var deletedEventID string
		err = tx.QueryRowContext(ctx, `
			DELETE FROM registrations
			WHERE user_id = $1 AND event_id = $2
			RETURNING event_id
		`, userID, eventID).Scan(&deletedEventID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("delete registration: %w", err)
		}

		if err = releaseSpots(ctx, tx, deletedEventID, 1); err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

// DeleteAllByUser removes the user's registrations and decrements each
// referenced event's counter by the number of rows removed for it, all in
// one transaction. A user with no registrations is a no-op.
func (r *registrationRepository) DeleteAllByUser(ctx context.Context, userID string) (int, error) {
	var total int
	err := withRetry(ctx, func() (err error) {
		total = 0
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		rows, err := tx.QueryContext(ctx, `
			DELETE FROM registrations
			WHERE user_id = $1
			RETURNING event_id
		`, userID)
		if err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}

		// Count removed rows per event, keeping first-seen order.
		perEvent := make(map[string]int)
		order := make([]string, 0)
		for rows.Next() {
			var eventID string
			if err = rows.Scan(&eventID); err != nil {
				rows.Close()
				return fmt.Errorf("scan event id: %w", err)
			}
			if perEvent[eventID] == 0 {
				order = append(order, eventID)
			}
			perEvent[eventID]++
			total++
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}

		for _, eventID := range order {
			if err = releaseSpots(ctx, tx, eventID, perEvent[eventID]); err != nil {
				return err
			}
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteAllByEvent removes every registration of the event and resets its
// counter to zero in the same transaction, so no concurrent reservation can
// slip between the row deletes and the reset.
func (r *registrationRepository) DeleteAllByEvent(ctx context.Context, eventID string) (int, error) {
	var total int
	err := withRetry(ctx, func() (err error) {
		total = 0
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		res, err := tx.ExecContext(ctx, `
			DELETE FROM registrations
			WHERE event_id = $1
		`, eventID)
		if err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}
		total = int(n)

		if err = resetSpots(ctx, tx, eventID); err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
