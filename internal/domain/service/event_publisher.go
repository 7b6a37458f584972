package service

import (
	"context"
)

// Event is a message placed on the event bus.
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Key       string `json:"key,omitempty"`        // partition or ordering key
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	Payload   any    `json:"payload"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error

	// Close releases any resources held by the publisher
	Close() error
}
