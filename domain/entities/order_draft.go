package entities

import "time"

// DraftState represents the lifecycle state of an order draft.
type DraftState string

const (
	DraftStatePlaced          DraftState = "placed"
	DraftStateAwaitingPayment DraftState = "awaiting_payment"
)

// OrderDraft is an order the upstream API has accepted but that has not been
// paid yet. The absent state of the lifecycle is represented by a nil draft
// on the cart; a draft only exists once the server has priced and accepted
// the order.
type OrderDraft struct {
	State           DraftState `json:"state"`
	TicketNumbers   []string   `json:"ticket_numbers"`
	LotteryIDs      []int64    `json:"lottery_ids"`
	BetAmount       string     `json:"bet_amount"`
	LocalTotal      float64    `json:"local_total"`
	ReferenceTotal  string     `json:"reference_total"`
	OrderID         string     `json:"order_id"`
	PaymentIntentID string     `json:"payment_intent_id"`
	ClientSecret    string     `json:"client_secret"`
	PlacedAt        time.Time  `json:"placed_at"`
}

// IsPlaced reports whether the draft sits in the placed state, awaiting the
// payment-method choice.
func (d *OrderDraft) IsPlaced() bool {
	return d != nil && d.State == DraftStatePlaced
}

// BeginPayment transitions the draft to the awaiting-payment state.
func (d *OrderDraft) BeginPayment() {
	d.State = DraftStateAwaitingPayment
}
