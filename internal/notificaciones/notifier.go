package notificaciones

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/GestionTG-25-26/tg-backend/internal/eventbus"
)

// Notifier consumes workflow events from the Redis firehose and emits one
// notification per event. Delivery is best effort: a missed message is
// reconciled by looking at the proyecto itself, so no ack/retry machinery is
// needed here.
type Notifier struct {
	client  *redis.Client
	limiter *rate.Limiter
}

// NewNotifier creates a notifier reading from the given Redis client. The
// rate limit keeps a burst of workflow activity from flooding the
// notification channel.
func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// Run subscribes to the firehose and processes events until ctx is done.
func (n *Notifier) Run(ctx context.Context) error {
	sub := n.client.Subscribe(ctx, eventbus.FirehoseChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	log.Printf("notifier subscribed to %s", eventbus.FirehoseChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if err := n.limiter.Wait(ctx); err != nil {
				return err
			}
			n.handle(msg.Payload)
		}
	}
}

func (n *Notifier) handle(payload string) {
	var envelope eventbus.Envelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		log.Printf("notifier: discarding malformed event: %v", err)
		return
	}
	text, ok := Render(envelope)
	if !ok {
		log.Printf("notifier: no template for event type %s", envelope.Type)
		return
	}
	// Notification transport (email/SMS) plugs in here; the workflow only
	// guarantees the event stream.
	log.Printf("[notificacion] proyecto=%s %s", envelope.ProyectoID, text)
}
