package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Les quatre genres d'événements temps réel. Les abonnés répondent par un
// refetch de la plage de dates courante, jamais par un patch incrémental.
const (
	EventBookingCreated   = "booking:created"
	EventBookingUpdated   = "booking:updated"
	EventBookingCancelled = "booking:cancelled"
	EventClientArrived    = "client:arrived"
)

const channel = "spa:calendar:events"

type Envelope struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
	At      time.Time       `json:"at"`
}

// Broker publie sur redis pub/sub et redistribue aux hubs abonnés. Une seule
// connexion par processus, fan-out local vers les sessions websocket.
type Broker struct {
	client *redis.Client
}

func NewBroker(redisAddr string) (*Broker, error) {
	const op = "events.NewBroker"

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Broker{client: client}, nil
}

// Publish n'échoue jamais côté appelant : un événement perdu coûte un refetch
// retardé, pas une mutation perdue.
func (b *Broker) Publish(ctx context.Context, kind string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Println("events: marshal payload:", err)
		return
	}

	env := Envelope{
		ID:      uuid.NewString(),
		Kind:    kind,
		Payload: raw,
		At:      time.Now(),
	}

	data, err := json.Marshal(env)
	if err != nil {
		log.Println("events: marshal envelope:", err)
		return
	}

	if err := b.client.Publish(ctx, channel, data).Err(); err != nil {
		log.Println("events: publish:", err)
	}
}

// Subscribe ouvre le flux d'événements. Le canal se ferme quand ctx s'annule.
func (b *Broker) Subscribe(ctx context.Context) <-chan Envelope {
	sub := b.client.Subscribe(ctx, channel)
	out := make(chan Envelope, 32)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					log.Println("events: bad envelope:", err)
					continue
				}
				select {
				case out <- env:
				default:
					// abonné lent : on saute, il refetchera au prochain
					log.Println("events: subscriber backlog, dropping", env.Kind)
				}
			}
		}
	}()

	return out
}

func (b *Broker) Close() error {
	return b.client.Close()
}
