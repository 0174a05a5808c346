package entities

import "time"

// Cart is the per-session state container for the purchase flow: the raw
// numeric input, the digit-length and lottery selections, the bet amount, the
// derived ticket numbers, and the order draft once one exists. One cart
// belongs to exactly one session; all mutations happen through the cart
// service so the invalidation rules stay in one place.
type Cart struct {
	SessionID          string          `json:"session_id"`
	RawInput           string          `json:"raw_input"`
	DigitLengths       []int           `json:"digit_lengths"`
	BetAmount          string          `json:"bet_amount"`
	SelectedLotteryIDs []int64         `json:"selected_lottery_ids"`
	Numbers            TicketNumberSet `json:"numbers"`
	Draft              *OrderDraft     `json:"draft,omitempty"`

	// Version supports optimistic concurrency in the session store. A save
	// with a stale version is rejected so a response that arrives after the
	// session moved on cannot clobber newer state.
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCart creates an empty cart for a session.
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID: sessionID,
		Numbers:   TicketNumberSet{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasDigitLength reports whether the given digit length is selected.
func (c *Cart) HasDigitLength(digit int) bool {
	for _, d := range c.DigitLengths {
		if d == digit {
			return true
		}
	}
	return false
}

// HasLottery reports whether the given lottery id is selected.
func (c *Cart) HasLottery(id int64) bool {
	for _, selected := range c.SelectedLotteryIDs {
		if selected == id {
			return true
		}
	}
	return false
}
