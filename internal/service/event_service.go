package service

import (
	"context"
	"fmt"

	"github.com/nexgenbattles/tournament-api/internal/authz"
	"github.com/nexgenbattles/tournament-api/internal/domain"
	"github.com/nexgenbattles/tournament-api/internal/repo/postgres"
	"github.com/nexgenbattles/tournament-api/pkg/events"
	"github.com/nexgenbattles/tournament-api/pkg/logger"
)

type EventService interface {
	Create(ctx context.Context, p domain.Principal, in *domain.EventCreateReq) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListPublic(ctx context.Context) ([]domain.Event, error)
	ListFor(ctx context.Context, p domain.Principal) ([]domain.Event, error)
	Update(ctx context.Context, p domain.Principal, id int64, patch domain.EventPatch) (*domain.Event, error)
	RegisterParticipant(ctx context.Context, p domain.Principal, eventID int64, in *domain.ParticipantCreateReq) (*domain.Participant, error)
	ListParticipants(ctx context.Context, eventID int64) ([]domain.Participant, error)
}

type eventService struct {
	eventsRepo       postgres.EventsRepo
	participantsRepo postgres.ParticipantsRepo
	eventBus         events.Publisher
}

func NewEventService(eventsRepo postgres.EventsRepo, participantsRepo postgres.ParticipantsRepo, eventBus events.Publisher) EventService {
	return &eventService{
		eventsRepo:       eventsRepo,
		participantsRepo: participantsRepo,
		eventBus:         eventBus,
	}
}

func (s *eventService) Create(ctx context.Context, p domain.Principal, in *domain.EventCreateReq) (*domain.Event, error) {
	if !authz.CanCreateEvent(p) {
		return nil, ErrForbidden
	}

	ev, err := s.eventsRepo.Create(ctx, p.UserID, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.publish(ctx, events.EventCreated, events.EventCreatedEvent{
		EventID:   ev.ID,
		Name:      ev.Name,
		HostID:    ev.HostID,
		GameName:  ev.GameName,
		Date:      ev.Date,
		CreatedAt: ev.CreatedAt,
	})

	return ev, nil
}

func (s *eventService) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	ev, err := s.eventsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrNotFound
	}
	return ev, nil
}

// ListPublic returns every event with its participant roster attached, for
// the open unauthenticated listing.
func (s *eventService) ListPublic(ctx context.Context) ([]domain.Event, error) {
	evs, err := s.eventsRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range evs {
		parts, err := s.participantsRepo.ListByEvent(ctx, evs[i].ID)
		if err != nil {
			return nil, err
		}
		evs[i].Participants = parts
	}
	return evs, nil
}

// ListFor applies the listing scope: admins see everything, hosts see their
// own events.
func (s *eventService) ListFor(ctx context.Context, p domain.Principal) ([]domain.Event, error) {
	scope := authz.ScopeForListing(p)
	if scope.All {
		return s.eventsRepo.ListAll(ctx)
	}
	return s.eventsRepo.ListByHost(ctx, scope.HostID)
}

func (s *eventService) Update(ctx context.Context, p domain.Principal, id int64, patch domain.EventPatch) (*domain.Event, error) {
	ev, err := s.eventsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrNotFound
	}
	if !authz.CanEditEvent(p, *ev) {
		return nil, ErrForbidden
	}

	updated, err := s.eventsRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	s.publish(ctx, events.EventUpdated, events.EventUpdatedEvent{
		EventID:   updated.ID,
		UpdatedBy: p.UserID,
		UpdatedAt: updated.UpdatedAt,
	})

	return updated, nil
}

func (s *eventService) RegisterParticipant(ctx context.Context, p domain.Principal, eventID int64, in *domain.ParticipantCreateReq) (*domain.Participant, error) {
	if !authz.CanRegisterParticipant(p) {
		return nil, ErrForbidden
	}

	// A participant always references a pre-existing event.
	ev, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrNotFound
	}

	part, err := s.participantsRepo.Create(ctx, eventID, p.UserID, in)
	if err != nil {
		return nil, fmt.Errorf("failed to register participant: %w", err)
	}

	s.publish(ctx, events.ParticipantRegistered, events.ParticipantRegisteredEvent{
		ParticipantID: part.ID,
		EventID:       part.EventID,
		TeamName:      part.TeamName,
		Email:         part.Email,
		CreatedAt:     part.CreatedAt,
	})

	return part, nil
}

func (s *eventService) ListParticipants(ctx context.Context, eventID int64) ([]domain.Participant, error) {
	ev, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrNotFound
	}
	return s.participantsRepo.ListByEvent(ctx, eventID)
}

func (s *eventService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, subject, payload); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
