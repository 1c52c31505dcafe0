package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nexgenbattles/tournament-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Subjects published by the API.
const (
	EventCreated          = "event.created"
	EventUpdated          = "event.updated"
	ParticipantRegistered = "participant.registered"
	UserOnboarded         = "user.onboarded"
	UserSubscribed        = "user.subscribed"
	ContactReceived       = "contact.received"
	PaymentOrderCreated   = "payment.order.created"
	PaymentVerified       = "payment.verified"
	NotifySent            = "notify.sent"
)

type EventCreatedEvent struct {
	EventID   int64     `json:"event_id"`
	Name      string    `json:"name"`
	HostID    int64     `json:"host_id"`
	GameName  string    `json:"game_name"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type EventUpdatedEvent struct {
	EventID   int64     `json:"event_id"`
	UpdatedBy int64     `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ParticipantRegisteredEvent struct {
	ParticipantID int64     `json:"participant_id"`
	EventID       int64     `json:"event_id"`
	TeamName      string    `json:"team_name"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}

type UserOnboardedEvent struct {
	UserID      int64     `json:"user_id"`
	Email       string    `json:"email"`
	OnboardedAt time.Time `json:"onboarded_at"`
}

type UserSubscribedEvent struct {
	UserID       int64     `json:"user_id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type ContactReceivedEvent struct {
	ContactID int64  `json:"contact_id"`
	Email     string `json:"email"`
}

type PaymentOrderCreatedEvent struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type PaymentVerifiedEvent struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

type NotifySentEvent struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
}
