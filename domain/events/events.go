package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeOrderPlaced     EventType = "order_placed"
	EventTypePaymentResolved EventType = "payment_resolved"
	EventTypeOrderReused     EventType = "order_reused"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// OrderPlacedEvent represents an order accepted by the upstream API
type OrderPlacedEvent struct {
	SessionID      string
	OrderID        string
	TicketCount    int
	LotteryCount   int
	LocalTotal     float64
	ReferenceTotal string
}

func (e OrderPlacedEvent) Type() EventType {
	return EventTypeOrderPlaced
}

// PaymentResolvedEvent represents a payment attempt that finished, either way
type PaymentResolvedEvent struct {
	SessionID string
	OrderID   string
	Succeeded bool
}

func (e PaymentResolvedEvent) Type() EventType {
	return EventTypePaymentResolved
}

// OrderReusedEvent represents a cart prefilled from a prior order
type OrderReusedEvent struct {
	SessionID     string
	SourceOrderID string
	NumberCount   int
}

func (e OrderReusedEvent) Type() EventType {
	return EventTypeOrderReused
}
