package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"gearshare/config"
	"gearshare/infras/kafka"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	TypeBookingCreated  = "booking.created"
	TypeBookingApproved = "booking.approved"
	TypeBookingRejected = "booking.rejected"
)

// BookingEvent is the payload published whenever a booking changes state.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"bookingId"`
	ItemID     int64     `json:"itemId"`
	BookerID   int64     `json:"bookerId"`
	OwnerID    int64     `json:"ownerId"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	PublishBookingEvent(ctx context.Context, eventType string, event BookingEvent)
}

type kafkaPublisher struct {
	client kafka.Client
	config *config.Config
}

func NewPublisher(client kafka.Client, config *config.Config) Publisher {
	return &kafkaPublisher{
		client: client,
		config: config,
	}
}

// PublishBookingEvent sends the event to the booking topic without blocking
// the caller. Publish failures are logged and never surfaced to the request,
// the booking itself has already been committed.
func (p *kafkaPublisher) PublishBookingEvent(ctx context.Context, eventType string, event BookingEvent) {
	if !p.config.Kafka.Enable {
		return
	}

	event.Type = eventType

	go func(ctx context.Context) {
		message := kafka.Message{
			Key:   strconv.FormatInt(event.BookingID, 10),
			Value: event,
		}

		err := p.client.SendMessages(ctx, p.config.Kafka.BookingTopic, message)
		if err != nil {
			log.Error().Err(err).
				Str("eventType", eventType).
				Int64("bookingID", event.BookingID).
				Msg("Failed to publish booking event")
		}
	}(context.WithoutCancel(ctx))
}
