package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nexgenbattles/tournament-api/internal/service"
)

type mockMailer struct {
	attempted []string
	failFor   map[string]error
}

func (m *mockMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	m.attempted = append(m.attempted, toEmail)
	if err, ok := m.failFor[toEmail]; ok {
		return "", err
	}
	return "mock-id", nil
}

func TestSendPropagatesTransportError(t *testing.T) {
	mail := &mockMailer{failFor: map[string]error{"a@x.com": errors.New("connection refused")}}
	svc := service.NewNotifyService(mail, nil, 0)

	err := svc.Send(context.Background(), "a@x.com", "subject", "body")
	if err == nil {
		t.Fatal("expected transport error to propagate")
	}
	if err.Error() != "connection refused" {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestSendBatchIsolatesFailures(t *testing.T) {
	recipients := []string{"a@x.com", "b@x.com", "c@x.com", "d@x.com"}
	mail := &mockMailer{failFor: map[string]error{"b@x.com": errors.New("mailbox full")}}
	svc := service.NewNotifyService(mail, nil, 0)

	result := svc.SendBatch(context.Background(), recipients, "subject", "body")

	if len(mail.attempted) != len(recipients) {
		t.Fatalf("attempted %d sends, want %d (failure must not short-circuit)", len(mail.attempted), len(recipients))
	}
	if len(result.Sent) != 3 {
		t.Fatalf("sent = %v, want 3 successes", result.Sent)
	}
	if len(result.Failed) != 1 {
		t.Fatalf("failed = %v, want exactly 1 failure", result.Failed)
	}
	if result.Failed[0].Email != "b@x.com" {
		t.Fatalf("failed recipient = %q, want b@x.com", result.Failed[0].Email)
	}
	if result.Failed[0].Error != "mailbox full" {
		t.Fatalf("failure reason = %q", result.Failed[0].Error)
	}
}

func TestSendBatchAllFailuresStillCompletes(t *testing.T) {
	mail := &mockMailer{failFor: map[string]error{
		"a@x.com": errors.New("boom"),
		"b@x.com": errors.New("boom"),
	}}
	svc := service.NewNotifyService(mail, nil, 0)

	result := svc.SendBatch(context.Background(), []string{"a@x.com", "b@x.com"}, "s", "b")

	if len(result.Sent) != 0 || len(result.Failed) != 2 {
		t.Fatalf("result = %+v, want 0 sent / 2 failed", result)
	}
}
