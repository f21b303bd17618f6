package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vet-clinic/internal/ports/events"

	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter es lo que usamos de *kafkago.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type Config struct {
	Brokers []string
	Topic   string

	// Por defecto 5s; el publish corre dentro del request.
	WriteTimeout time.Duration
}

// Publisher escribe eventos de dominio en un topic. La key del mensaje es Event.Key,
// así los eventos de una misma cita caen en la misma partición y mantienen el orden.
type Publisher struct {
	w       messageWriter
	timeout time.Duration
}

func NewPublisher(cfg Config) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		WriteTimeout: timeout,
	}
	return &Publisher{w: w, timeout: timeout}, nil
}

// envelope es el formato en el cable.
type envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func (p *Publisher) Publish(ctx context.Context, evt events.Event) error {
	value, err := json.Marshal(envelope{
		ID:         evt.ID,
		Type:       evt.Type,
		OccurredAt: evt.OccurredAt,
		Payload:    evt.Payload,
	})
	if err != nil {
		return fmt.Errorf("kafka: marshal event %s: %w", evt.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	msg := kafkago.Message{
		Key:   []byte(evt.Key),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(evt.ID)},
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", evt.Type, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
