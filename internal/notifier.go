package internal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"
)

var CHANNEL_EVENTS = "TORGET_EVENTS"

type EventType string

const (
	EventCartUpdated   EventType = "cart.updated"
	EventCartCleared   EventType = "cart.cleared"
	EventOrderPlaced   EventType = "order.placed"
	EventEntitySaved   EventType = "entity.saved"
	EventEntityUpdated EventType = "entity.updated"
)

type Event struct {
	Type      EventType `json:"type"`
	Payload   string    `json:"payload"`
	Timestamp int64     `json:"timestamp"`
}

// Notifier publishes fire-and-forget events to Redis pub/sub. Failures are
// logged and swallowed; notification is never part of a request's contract.
type Notifier struct {
	client *redis.Client
}

func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) Publish(ctx context.Context, eventType EventType, payload string) {
	event := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		zlog.Error().Err(err).Msg("failed to marshal event")
		return
	}

	if err := n.client.Publish(ctx, CHANNEL_EVENTS, string(data)).Err(); err != nil {
		zlog.Error().Err(err).Str("type", string(eventType)).Msg("failed to publish event")
	}
}
