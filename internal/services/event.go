package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventmanagement/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
	ledger    domain.CapacityLedger
}

// NewEventService creates an EventService with the given repository and ledger.
func NewEventService(eventRepo domain.EventRepository, ledger domain.CapacityLedger) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
		ledger:    ledger,
	}
}

func (s *eventService) Create(ctx context.Context, title, location string, date time.Time, maxParticipants int) (*domain.Event, error) {
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}
	if location == "" {
		return nil, fmt.Errorf("location is required: %w", domain.ErrInvalidInput)
	}
	if maxParticipants < 1 {
		return nil, fmt.Errorf("max participants must be positive: %w", domain.ErrInvalidInput)
	}

	event := domain.NewEvent(title, location, date, maxParticipants)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) ListByDate(ctx context.Context, date time.Time) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list events by date: %w", err)
	}
	return events, nil
}

func (s *eventService) ListAvailable(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available events: %w", err)
	}
	return events, nil
}

func (s *eventService) Search(ctx context.Context, title, location string) ([]*domain.Event, error) {
	events, err := s.eventRepo.Search(ctx, strings.TrimSpace(title), strings.TrimSpace(location))
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return events, nil
}

// IsAvailable is advisory: registration must still go through the ledger's
// atomic reserve, which re-checks capacity as part of the increment.
func (s *eventService) IsAvailable(ctx context.Context, id string) (bool, error) {
	return s.ledger.IsAvailable(ctx, id)
}

func (s *eventService) UpdateTitle(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}
	return s.eventRepo.UpdateTitle(ctx, id, title)
}

func (s *eventService) UpdateLocation(ctx context.Context, id, location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return fmt.Errorf("location is required: %w", domain.ErrInvalidInput)
	}
	return s.eventRepo.UpdateLocation(ctx, id, location)
}

func (s *eventService) UpdateDate(ctx context.Context, id string, date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("date is required: %w", domain.ErrInvalidInput)
	}
	return s.eventRepo.UpdateDate(ctx, id, date)
}

func (s *eventService) UpdateMaxParticipants(ctx context.Context, id string, maxParticipants int) error {
	if maxParticipants < 1 {
		return fmt.Errorf("max participants must be positive: %w", domain.ErrInvalidInput)
	}
	return s.eventRepo.UpdateMaxParticipants(ctx, id, maxParticipants)
}

// Delete refuses to remove an event that still has live registrations;
// callers must clear them first (e.g. via RegistrationService.DeleteAllByEvent).
func (s *eventService) Delete(ctx context.Context, id string) error {
	err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrEventHasRegistrations) {
			return err
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
