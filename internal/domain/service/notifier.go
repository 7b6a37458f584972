package service

import "context"

// EmailMessage is a transactional email to render and deliver.
type EmailMessage struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

// Notifier sends emails in a fire-and-forget manner. Delivery problems are
// logged by the implementation and never reach the caller.
type Notifier interface {
	Send(ctx context.Context, msg *EmailMessage)
}
