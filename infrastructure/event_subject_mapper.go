package infrastructure

import (
	"fmt"

	"lotocart/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeOrderPlaced:
		return "lottery.order.placed"
	case events.EventTypePaymentResolved:
		return "lottery.payment.resolved"
	case events.EventTypeOrderReused:
		return "lottery.order.reused"
	default:
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"lottery.order.placed",
		"lottery.payment.resolved",
		"lottery.order.reused",
	}
}
