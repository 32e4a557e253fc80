// Package events publishes game session lifecycle events to RabbitMQ.
// Publishing is best effort: failures are logged and returned, and callers
// never roll back a committed write because of them.
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"gameclub/models"
	"gameclub/utils"
)

const (
	SessionScheduled = "session.scheduled"
	SessionUpdated   = "session.updated"
	SessionDeleted   = "session.deleted"
)

// SessionEvent is the message body for every session event.
type SessionEvent struct {
	Type          string     `json:"type"`
	SessionID     uint       `json:"sessionId"`
	GameID        uint       `json:"gameId,omitempty"`
	VenueID       *uint      `json:"venueId,omitempty"`
	Status        string     `json:"status,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	PlayerIDs     []uint     `json:"playerIds,omitempty"`
	OccurredAt    time.Time  `json:"occurredAt"`
}

// NewSessionEvent builds an event of kind from the stored session.
func NewSessionEvent(kind string, s *models.GameSession, playerIDs []uint) SessionEvent {
	ev := SessionEvent{
		Type:       kind,
		SessionID:  s.ID,
		GameID:     s.GameID,
		VenueID:    s.VenueID,
		Status:     string(s.Status),
		PlayerIDs:  playerIDs,
		OccurredAt: time.Now().UTC(),
	}
	if !s.ScheduledDate.IsZero() {
		date := s.ScheduledDate
		ev.ScheduledDate = &date
	}
	return ev
}

type Publisher interface {
	Publish(ctx context.Context, ev SessionEvent) error
}

// Noop drops every event. It is used when AMQP_URL is not set.
type Noop struct{}

func (Noop) Publish(context.Context, SessionEvent) error { return nil }

// AMQPPublisher dials the broker per message and publishes persistent JSON
// messages to a durable queue.
type AMQPPublisher struct {
	URL   string
	Queue string
}

// New returns an AMQP publisher for url, or Noop when url is empty.
func New(url, queue string) Publisher {
	if url == "" {
		return Noop{}
	}
	return &AMQPPublisher{URL: url, Queue: queue}
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev SessionEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		utils.LogError("rabbitmq: dial failed", map[string]interface{}{"error": err.Error()})
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		utils.LogError("rabbitmq: channel open failed", map[string]interface{}{"error": err.Error()})
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		utils.LogError("rabbitmq: queue declare failed", map[string]interface{}{"queue": p.Queue, "error": err.Error()})
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := ch.PublishWithContext(pubCtx,
		"",      // default exchange
		p.Queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
			Type:         ev.Type,
			Body:         body,
		},
	); err != nil {
		utils.LogError("rabbitmq: publish failed", map[string]interface{}{"event": ev.Type, "error": err.Error()})
		return err
	}
	return nil
}

// Recorder keeps published events in memory. Tests use it to assert on events.
type Recorder struct {
	Events []SessionEvent
}

func (r *Recorder) Publish(_ context.Context, ev SessionEvent) error {
	r.Events = append(r.Events, ev)
	return nil
}
