package service

import (
	"context"
	"time"

	"github.com/nexgenbattles/tournament-api/internal/platform/mailer"
	"github.com/nexgenbattles/tournament-api/pkg/events"
	"github.com/nexgenbattles/tournament-api/pkg/logger"
)

// BatchResult collects the outcome of a batch send. Both lists are always
// present; a partial failure still yields a complete result.
type BatchResult struct {
	Sent   []string       `json:"sent"`
	Failed []BatchFailure `json:"failed"`
}

type BatchFailure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type NotifyService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendBatch(ctx context.Context, recipients []string, subject, body string) BatchResult
}

type notifyService struct {
	mail     mailer.Service
	eventBus events.Publisher
	// delay between consecutive sends in a batch, backpressure against the
	// transport's rate limit. Zero in tests.
	delay time.Duration
}

func NewNotifyService(mail mailer.Service, eventBus events.Publisher, delay time.Duration) NotifyService {
	return &notifyService{mail: mail, eventBus: eventBus, delay: delay}
}

func (s *notifyService) Send(ctx context.Context, to, subject, body string) error {
	if _, err := s.mail.Send(to, "", subject, body, ""); err != nil {
		return err
	}

	s.publish(ctx, events.NotifySent, events.NotifySentEvent{Recipient: to, Subject: subject})
	return nil
}

// SendBatch delivers sequentially with a fixed delay between sends. A failing
// recipient is recorded and never aborts the rest of the batch.
func (s *notifyService) SendBatch(ctx context.Context, recipients []string, subject, body string) BatchResult {
	result := BatchResult{Sent: []string{}, Failed: []BatchFailure{}}

	for i, to := range recipients {
		if i > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}

		if _, err := s.mail.Send(to, "", subject, body, ""); err != nil {
			logger.ErrorContext(ctx, "Batch email send failed", "to", to, "error", err)
			result.Failed = append(result.Failed, BatchFailure{Email: to, Error: err.Error()})
			continue
		}

		result.Sent = append(result.Sent, to)
		s.publish(ctx, events.NotifySent, events.NotifySentEvent{Recipient: to, Subject: subject})
	}

	return result
}

func (s *notifyService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, subject, payload); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
