package ports

import (
	"context"
	"time"
)

// OrderEventKind names what happened to the order collection.
type OrderEventKind string

const (
	OrderCreated       OrderEventKind = "order.created"
	OrderStatusChanged OrderEventKind = "order.status_changed"
	OrderDeleted       OrderEventKind = "order.deleted"
	OrdersCleared      OrderEventKind = "orders.cleared"
)

// OrderEvent is published after a successful store write.
type OrderEvent struct {
	Kind       OrderEventKind `json:"kind"`
	OrderIDs   []string       `json:"orderIds"`
	Field      string         `json:"field,omitempty"`
	Value      any            `json:"value,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// OrderEventPublisher fans store writes out to other systems. Publishing is best effort:
// a failed publish never undoes the write it describes.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
