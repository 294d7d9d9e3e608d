package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventmanagement/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger answers availability from a map; the real ledger reads the
// events table.
type fakeLedger struct {
	available map[string]bool
	reserved  map[string]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		available: make(map[string]bool),
		reserved:  make(map[string]int),
	}
}

func (f *fakeLedger) TryReserve(ctx context.Context, eventID string) error {
	if _, ok := f.available[eventID]; !ok {
		return domain.ErrNotFound
	}
	if !f.available[eventID] {
		return domain.ErrCapacityExceeded
	}
	f.reserved[eventID]++
	return nil
}

func (f *fakeLedger) Release(ctx context.Context, eventID string, count int) error {
	if _, ok := f.available[eventID]; !ok {
		return domain.ErrNotFound
	}
	f.reserved[eventID] -= count
	return nil
}

func (f *fakeLedger) ResetToZero(ctx context.Context, eventID string) error {
	if _, ok := f.available[eventID]; !ok {
		return domain.ErrNotFound
	}
	f.reserved[eventID] = 0
	return nil
}

func (f *fakeLedger) IsAvailable(ctx context.Context, eventID string) (bool, error) {
	avail, ok := f.available[eventID]
	if !ok {
		return false, domain.ErrNotFound
	}
	return avail, nil
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 5, 20, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		title           string
		location        string
		maxParticipants int
		repoErr         error
		wantErr         error
	}{
		{
			name:            "success",
			title:           "GopherCon",
			location:        "Berlin",
			maxParticipants: 100,
		},
		{
			name:            "trims whitespace",
			title:           "  GopherCon  ",
			location:        "  Berlin  ",
			maxParticipants: 100,
		},
		{
			name:            "missing title",
			title:           "   ",
			location:        "Berlin",
			maxParticipants: 100,
			wantErr:         domain.ErrInvalidInput,
		},
		{
			name:            "missing location",
			title:           "GopherCon",
			location:        "",
			maxParticipants: 100,
			wantErr:         domain.ErrInvalidInput,
		},
		{
			name:            "non-positive capacity",
			title:           "GopherCon",
			location:        "Berlin",
			maxParticipants: 0,
			wantErr:         domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			repo.err = tt.repoErr
			svc := NewEventService(repo, newFakeLedger())

			event, err := svc.Create(ctx, tt.title, tt.location, date, tt.maxParticipants)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, event.ID)
			assert.Equal(t, "GopherCon", event.Title)
			assert.Equal(t, "Berlin", event.Location)
			assert.Equal(t, 0, event.RegisteredParticipants)
		})
	}
}

func TestEventService_Create_repoError(t *testing.T) {
	repo := newFakeEventRepo()
	repo.err = errors.New("db down")
	svc := NewEventService(repo, newFakeLedger())

	_, err := svc.Create(context.Background(), "GopherCon", "Berlin", time.Now(), 10)
	require.Error(t, err)
}

func TestEventService_IsAvailable(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.available["ev-1"] = true
	ledger.available["ev-2"] = false
	svc := NewEventService(newFakeEventRepo(), ledger)

	avail, err := svc.IsAvailable(ctx, "ev-1")
	require.NoError(t, err)
	assert.True(t, avail)

	avail, err = svc.IsAvailable(ctx, "ev-2")
	require.NoError(t, err)
	assert.False(t, avail)

	_, err = svc.IsAvailable(ctx, "ev-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_UpdateTitle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeLedger())

	event, err := svc.Create(ctx, "GopherCon", "Berlin", time.Now(), 10)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateTitle(ctx, event.ID, "GopherCon EU"))
	got, err := svc.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon EU", got.Title)

	err = svc.UpdateTitle(ctx, event.ID, "   ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = svc.UpdateTitle(ctx, "ev-missing", "New")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventService_UpdateMaxParticipants(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeLedger())

	event, err := svc.Create(ctx, "GopherCon", "Berlin", time.Now(), 10)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateMaxParticipants(ctx, event.ID, 20))

	err = svc.UpdateMaxParticipants(ctx, event.ID, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Capacity cannot shrink below the registered count.
	require.NoError(t, repo.reserve(event.ID))
	require.NoError(t, repo.reserve(event.ID))
	err = svc.UpdateMaxParticipants(ctx, event.ID, 1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeLedger())

	event, err := svc.Create(ctx, "GopherCon", "Berlin", time.Now(), 10)
	require.NoError(t, err)

	t.Run("blocked while registrations exist", func(t *testing.T) {
		require.NoError(t, repo.reserve(event.ID))
		err := svc.Delete(ctx, event.ID)
		require.ErrorIs(t, err, domain.ErrEventHasRegistrations)
	})

	t.Run("succeeds once cleared", func(t *testing.T) {
		require.NoError(t, repo.reset(event.ID))
		require.NoError(t, svc.Delete(ctx, event.ID))
		_, err := svc.GetByID(ctx, event.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown event", func(t *testing.T) {
		err := svc.Delete(ctx, "ev-missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_Search(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo()
	svc := NewEventService(repo, newFakeLedger())

	_, err := svc.Create(ctx, "GopherCon", "Berlin", time.Now(), 10)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "dotGo", "Paris", time.Now(), 10)
	require.NoError(t, err)

	events, err := svc.Search(ctx, "GopherCon", "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Berlin", events[0].Location)
}
