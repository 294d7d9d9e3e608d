package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventmanagement/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	userRepo         domain.UserRepository
	emailService     domain.EmailService
	logger           *slog.Logger
}

// NewRegistrationService creates a RegistrationService with the given
// repositories. emailService may be nil; confirmations are then skipped.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		logger:           logger,
	}
}

// Create registers the user for the event. The duplicate check here is only
// a fast-path rejection; the unique index on (user_id, event_id) is the
// arbiter when two creates race, and the repository reserves the spot and
// inserts the row in one transaction.
func (s *registrationService) Create(ctx context.Context, userID, eventID string) (*domain.Registration, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if _, err := s.registrationRepo.GetByUserAndEvent(ctx, userID, eventID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	reg := domain.NewRegistration(userID, eventID, time.Now())
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrCapacityExceeded),
			errors.Is(err, domain.ErrAlreadyRegistered):
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.sendConfirmation(ctx, user, event)
	return reg, nil
}

// sendConfirmation is best effort: a mail failure never fails the registration.
func (s *registrationService) sendConfirmation(ctx context.Context, user *domain.User, event *domain.Event) {
	if s.emailService == nil {
		return
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:      user.Email,
		Username:   user.Username,
		EventTitle: event.Title,
		EventDate:  event.Date.Format("January 2, 2006 15:04"),
		Location:   event.Location,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "confirmation email failed",
			"user_id", user.ID, "event_id", event.ID, "err", err)
	}
}

func (s *registrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return s.registrationRepo.GetByID(ctx, id)
}

func (s *registrationService) List(ctx context.Context) ([]*domain.Registration, error) {
	regs, err := s.registrationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (s *registrationService) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	regs, err := s.registrationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (s *registrationService) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

func (s *registrationService) DeleteByID(ctx context.Context, id string) error {
	if err := s.registrationRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (s *registrationService) DeleteByUserAndEvent(ctx context.Context, userID, eventID string) error {
	if err := s.registrationRepo.DeleteByUserAndEvent(ctx, userID, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

// DeleteAllByUser removes every registration of the user. A user with no
// registrations is a successful no-op.
func (s *registrationService) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	n, err := s.registrationRepo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete registrations: %w", err)
	}
	s.logger.InfoContext(ctx, "registrations removed", "user_id", userID, "count", n)
	return nil
}

func (s *registrationService) DeleteAllByEvent(ctx context.Context, eventID string) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	n, err := s.registrationRepo.DeleteAllByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("delete registrations: %w", err)
	}
	s.logger.InfoContext(ctx, "registrations removed", "event_id", eventID, "count", n)
	return nil
}
