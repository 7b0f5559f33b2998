package event

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

const maxCapacity = 10_000

type Servicer interface {
	Create(ctx context.Context, organizerID int64, req CreateRequest) (Event, error)
	Get(ctx context.Context, id int64) (Event, error)
	List(ctx context.Context) ([]Event, error)
	Participants(ctx context.Context, eventID int64) ([]Participant, error)
	Join(ctx context.Context, eventID int64, req JoinRequest) (Participant, error)
	Leave(ctx context.Context, eventID, userID int64) error
}

type Service struct {
	events       Repository
	participants ParticipantRepository
	log          *slog.Logger
}

func NewService(events Repository, participants ParticipantRepository, log *slog.Logger) *Service {
	return &Service{
		events:       events,
		participants: participants,
		log:          log,
	}
}

// Create validates the request and delegates to the repository.
func (s *Service) Create(ctx context.Context, organizerID int64, req CreateRequest) (Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return Event{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.MaxParticipants <= 0 {
		return Event{}, fmt.Errorf("%w: max_participants must be a positive integer", ErrInvalidInput)
	}
	if req.MaxParticipants > maxCapacity {
		return Event{}, fmt.Errorf("%w: max_participants cannot exceed %d", ErrInvalidInput, maxCapacity)
	}
	if !req.EndsAt.IsZero() && req.EndsAt.Before(req.StartsAt) {
		return Event{}, fmt.Errorf("%w: ends_at precedes starts_at", ErrInvalidInput)
	}

	e := Event{
		Title:           req.Title,
		Description:     req.Description,
		GameID:          req.GameID,
		OrganizerID:     organizerID,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		MaxParticipants: req.MaxParticipants,
		Public:          req.Public,
	}

	created, err := s.events.Create(ctx, e)
	if err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("event created", "event_id", created.ID, "organizer_id", organizerID)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Event{}, ErrNotFound
		}
		return Event{}, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	return s.events.List(ctx)
}

func (s *Service) Participants(ctx context.Context, eventID int64) ([]Participant, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.participants.ListByEvent(ctx, eventID)
}

// Join registers a user. Capacity and duplicate checks are enforced atomically
// by the participant repository.
func (s *Service) Join(ctx context.Context, eventID int64, req JoinRequest) (Participant, error) {
	req.Nick = strings.TrimSpace(req.Nick)
	if req.Nick == "" {
		return Participant{}, fmt.Errorf("%w: nick is required", ErrInvalidInput)
	}
	if req.Role == "" {
		return Participant{}, fmt.Errorf("%w: role is required", ErrInvalidInput)
	}

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return Participant{}, err
	}

	p, err := s.participants.Join(ctx, eventID, req)
	if err != nil {
		// Surface domain errors directly so handlers can set correct HTTP status.
		if errors.Is(err, ErrEventFull) || errors.Is(err, ErrAlreadyRegistered) {
			return Participant{}, err
		}
		return Participant{}, fmt.Errorf("join event: %w", err)
	}

	s.log.Info("participant joined", "event_id", eventID, "user_id", req.UserID)
	return p, nil
}

func (s *Service) Leave(ctx context.Context, eventID, userID int64) error {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}

	if err := s.participants.Leave(ctx, eventID, userID); err != nil {
		if errors.Is(err, ErrNotRegistered) {
			return ErrNotRegistered
		}
		return fmt.Errorf("leave event: %w", err)
	}

	s.log.Info("participant left", "event_id", eventID, "user_id", userID)
	return nil
}
