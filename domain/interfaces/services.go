package interfaces

import (
	"context"

	"lotocart/domain/entities"
)

// SubmitResult describes the outcome of a submit call.
type SubmitResult struct {
	// Draft is the placed draft after submission.
	Draft *entities.OrderDraft
	// ProceedToPayment is true when a draft already existed and the submit
	// short-circuited straight to the payment-method choice instead of
	// re-placing the order.
	ProceedToPayment bool
}

// PaymentOutcome describes the terminal result of a payment attempt.
type PaymentOutcome struct {
	Succeeded bool
	// FormReset is true when the whole cart was reset (successful payment).
	FormReset bool
}

// CartService implements the purchase-flow state machine over a cart. Every
// mutation that invalidates a placed draft does so explicitly; there is no
// implicit recomputation anywhere else.
type CartService interface {
	// SetRawInput replaces the raw numeric input and rebuilds the ticket
	// number set. Clears any placed draft.
	SetRawInput(cart *entities.Cart, raw string)

	// SetDigitLengths replaces the digit-length selection and rebuilds the
	// ticket number set. Clears any placed draft.
	SetDigitLengths(cart *entities.Cart, lengths []int) error

	// SetBetAmount replaces the bet amount. Clears any placed draft.
	SetBetAmount(cart *entities.Cart, amount string) error

	// SetLotteries replaces the lottery selection, validated against the
	// catalog. Clears any placed draft.
	SetLotteries(cart *entities.Cart, ids []int64, catalog []entities.Lottery) error

	// RemoveNumber removes one ticket number. A placed draft is re-priced in
	// place, unless the removal empties the set, in which case the draft is
	// cleared.
	RemoveNumber(cart *entities.Cart, digit, index int) error

	// Validate checks the cart is submittable
	Validate(cart *entities.Cart) error

	// Submit places the order upstream, or short-circuits to payment when
	// any draft already exists
	Submit(ctx context.Context, cart *entities.Cart) (*SubmitResult, error)

	// BeginPayment transitions the draft to awaiting payment and ensures a
	// payment client secret exists. Accepts a draft already awaiting payment
	// so the payment step can be retried.
	BeginPayment(ctx context.Context, cart *entities.Cart) (string, error)

	// ResolvePayment records the terminal payment outcome. The draft is
	// cleared either way; success additionally resets the whole form.
	ResolvePayment(cart *entities.Cart, succeeded bool) *PaymentOutcome

	// Reset returns the cart to its initial empty state
	Reset(cart *entities.Cart)

	// PrefillFromOrder populates the cart from a prior order's details
	PrefillFromOrder(ctx context.Context, cart *entities.Cart, orderID string, catalog []entities.Lottery) error
}
