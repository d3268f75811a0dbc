package notification

import "context"

const RoutingKeyBookingCreated = "booking.created"

type eventPublisher interface {
	Publish(ctx context.Context, routingKey string, v any) error
}

// EventChannel publishes a booking.created event for downstream consumers.
type EventChannel struct {
	publisher eventPublisher
}

func NewEventChannel(p eventPublisher) *EventChannel {
	return &EventChannel{publisher: p}
}

func (c *EventChannel) Name() string { return "events" }

func (c *EventChannel) Send(ctx context.Context, m Message) error {
	return c.publisher.Publish(ctx, RoutingKeyBookingCreated, m)
}
