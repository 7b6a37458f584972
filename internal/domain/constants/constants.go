// Package constants holds identifiers shared between configuration and infrastructure.
package constants

// Pub/Sub providers selectable through pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderKafka  = "kafka"
)

// Event types published on the event bus.
const (
	EventTypeEmail = "email.send"
)

// Email templates rendered by the notifier.
const (
	TemplateWelcome           = "welcome"
	TemplateOrderConfirmation = "order_confirmation"
)

// Echo context keys set by the auth middleware.
const (
	ContextKeyCaller = "caller"
)
