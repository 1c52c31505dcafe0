package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nexgenbattles/tournament-api/internal/domain"
	"github.com/nexgenbattles/tournament-api/internal/repo/postgres"
	"github.com/nexgenbattles/tournament-api/pkg/events"
	"github.com/nexgenbattles/tournament-api/pkg/logger"
)

type UserService interface {
	Get(ctx context.Context, email string) (*domain.User, error)
	Onboard(ctx context.Context, email string, in *domain.OnboardRequest) (*domain.User, error)
	Subscribe(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error)
	SubmitContact(ctx context.Context, in *domain.ContactReq) (*domain.ContactMessage, error)
}

type userService struct {
	usersRepo    postgres.UsersRepo
	contactsRepo postgres.ContactsRepo
	eventBus     events.Publisher
}

func NewUserService(usersRepo postgres.UsersRepo, contactsRepo postgres.ContactsRepo, eventBus events.Publisher) UserService {
	return &userService{
		usersRepo:    usersRepo,
		contactsRepo: contactsRepo,
		eventBus:     eventBus,
	}
}

func (s *userService) Get(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.usersRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *userService) Onboard(ctx context.Context, email string, in *domain.OnboardRequest) (*domain.User, error) {
	u, err := s.usersRepo.Onboard(ctx, email, in)
	if err != nil {
		return nil, fmt.Errorf("failed to onboard user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}

	s.publish(ctx, events.UserOnboarded, events.UserOnboardedEvent{
		UserID:      u.ID,
		Email:       u.Email,
		OnboardedAt: u.UpdatedAt,
	})

	return u, nil
}

func (s *userService) Subscribe(ctx context.Context, email string) (*domain.User, error) {
	now := time.Now()
	u, err := s.usersRepo.SetSubscribed(ctx, email, now)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe user: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}

	s.publish(ctx, events.UserSubscribed, events.UserSubscribedEvent{
		UserID:       u.ID,
		Email:        u.Email,
		SubscribedAt: now,
	})

	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error) {
	u, err := s.usersRepo.UpdateProfile(ctx, email, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *userService) SubmitContact(ctx context.Context, in *domain.ContactReq) (*domain.ContactMessage, error) {
	msg, err := s.contactsRepo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	s.publish(ctx, events.ContactReceived, events.ContactReceivedEvent{
		ContactID: msg.ID,
		Email:     msg.Email,
	})

	return msg, nil
}

func (s *userService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, subject, payload); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
