package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hotelbook/hotel-web/pkg/logger"
	"github.com/nats-io/nats.go"
)

// Publisher emits user-activity notifications from the front end. Publishing
// is best effort: the UI never blocks or fails a request on the event bus.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	n.conn.Close()
	return nil
}

// NoopPublisher is used when no event bus is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }

// Event subjects
const (
	SessionLogin   = "session.login"
	SessionLogout  = "session.logout"
	BookingCreated = "booking.created"
)

// Event payloads
type SessionLoginEvent struct {
	Username string    `json:"username"`
	LoggedAt time.Time `json:"logged_at"`
}

type SessionLogoutEvent struct {
	LoggedAt time.Time `json:"logged_at"`
}

type BookingCreatedEvent struct {
	RoomType     string    `json:"room_type"`
	CheckInDate  string    `json:"check_in_date"`
	CheckOutDate string    `json:"check_out_date"`
	CreatedAt    time.Time `json:"created_at"`
}
