package postgres

import (
	"context"
	"testing"
	"time"

	"eventmanagement/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventRowColumns = []string{"id", "title", "location", "date", "max_participants", "registered_participants"}

func TestEventRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs("GopherCon", "Berlin", date, 100).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("event-1"))

	repo := NewEventRepository(db)
	e := &domain.Event{Title: "GopherCon", Location: "Berlin", Date: date, MaxParticipants: 100}
	require.NoError(t, repo.Create(context.Background(), e))
	require.Equal(t, "event-1", e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, location, date`).
			WithArgs("event-1").
			WillReturnRows(sqlmock.NewRows(eventRowColumns).
				AddRow("event-1", "GopherCon", "Berlin", date, 100, 42))

		repo := NewEventRepository(db)
		e, err := repo.GetByID(ctx, "event-1")
		require.NoError(t, err)
		require.Equal(t, "GopherCon", e.Title)
		require.Equal(t, 42, e.RegisteredParticipants)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, location, date`).
			WithArgs("event-missing").
			WillReturnRows(sqlmock.NewRows(eventRowColumns))

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, "event-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT id, title, location, date`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("event-1", "GopherCon", "Berlin", date, 100, 42).
			AddRow("event-2", "dotGo", "Paris", date, 50, 50))

	repo := NewEventRepository(db)
	events, total, err := repo.List(context.Background(), domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 7, total)
	require.Len(t, events, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`registered_participants < max_participants`).
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("event-1", "GopherCon", "Berlin", date, 100, 42))

	repo := NewEventRepository(db)
	events, err := repo.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`ILIKE`).
		WithArgs("gopher", "").
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("event-1", "GopherCon", "Berlin", date, 100, 42))

	repo := NewEventRepository(db)
	events, err := repo.Search(context.Background(), "gopher", "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "GopherCon", events[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_UpdateTitle(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events SET title`).
			WithArgs("event-1", "New title").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.UpdateTitle(ctx, "event-1", "New title"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events SET title`).
			WithArgs("event-missing", "New title").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		err = repo.UpdateTitle(ctx, "event-missing", "New title")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_UpdateMaxParticipants(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		max     int
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			max:  200,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WithArgs("event-1", 200).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "below registered count",
			max:  5,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WithArgs("event-1", 5).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("event-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "event missing",
			max:  200,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WithArgs("event-1", 200).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("event-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "non-positive capacity rejected",
			max:     0,
			mock:    func(mock sqlmock.Sqlmock) {},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.UpdateMaxParticipants(ctx, "event-1", tt.max)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events`).
					WithArgs("event-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "still has registrations",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events`).
					WithArgs("event-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("event-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: domain.ErrEventHasRegistrations,
		},
		{
			name: "event missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM events`).
					WithArgs("event-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("event-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Delete(ctx, "event-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
