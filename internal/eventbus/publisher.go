package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GestionTG-25-26/tg-backend/internal/proyectos/domain"
)

const (
	// FirehoseChannel receives every domain event.
	FirehoseChannel = "tg:events"
	// proyectoChannelPrefix scopes a channel per proyecto: tg:events:{proyecto_id}
	proyectoChannelPrefix = "tg:events:"
)

// Envelope is the wire form of a domain event on the bus.
type Envelope struct {
	Type       string          `json:"type"`
	ProyectoID string          `json:"proyecto_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// RedisPublisher delivers domain events over Redis Pub/Sub. Delivery is
// at-least-once at best; subscribers that miss a message reconcile from the
// proyecto state.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish sends one event to the firehose channel and to the proyecto's own
// channel.
func (p *RedisPublisher) Publish(ctx context.Context, e domain.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", e.EventType(), err)
	}
	envelope, err := json.Marshal(Envelope{
		Type:       e.EventType(),
		ProyectoID: e.ProjectID(),
		OccurredAt: e.OccurredAt(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, FirehoseChannel, envelope)
	pipe.Publish(ctx, ProyectoChannel(e.ProjectID()), envelope)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish %s: %w", e.EventType(), err)
	}
	return nil
}

// PublishAll sends every event in order, stopping at the first failure.
func (p *RedisPublisher) PublishAll(ctx context.Context, events []domain.Event) error {
	for _, e := range events {
		if err := p.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// ProyectoChannel returns the per-proyecto channel name.
func ProyectoChannel(proyectoID string) string {
	return proyectoChannelPrefix + proyectoID
}
