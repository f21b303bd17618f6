package events

import (
	"context"
	"time"
)

// Event es un hecho de dominio ya ocurrido. Payload se serializa como JSON.
type Event struct {
	ID         string
	Type       string
	Key        string
	OccurredAt time.Time
	Payload    any
}

// Publisher entrega eventos a un broker. Las implementaciones no reintentan.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
