package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lotocart/domain/entities"
	"lotocart/domain/events"
	"lotocart/domain/interfaces"
	"lotocart/domain/utils"

	log "github.com/sirupsen/logrus"
)

const (
	// MinDigitLength and MaxDigitLength bound the playable digit lengths.
	// The purchase form offers 2-4; the order-reuse flow may additionally
	// infer length 1 from historic orders.
	MinDigitLength = 1
	MaxDigitLength = 4
)

// Errors
var (
	ErrNoLotterySelected   = errors.New("no lottery selected")
	ErrNoValidNumbers      = errors.New("no valid ticket numbers entered")
	ErrNoDigitTypeSelected = errors.New("no digit length selected")
	ErrMissingBetAmount    = errors.New("bet amount is required")
	ErrInvalidBetAmount    = errors.New("invalid bet amount")
	ErrInvalidDigitLength  = errors.New("invalid digit length")
	ErrUnknownLottery      = errors.New("lottery not in catalog")
	ErrNumberNotFound      = errors.New("ticket number not found")
	ErrNoOrderDraft        = errors.New("no order draft")
	ErrEmptyOrder          = errors.New("order has no details")
)

// cartService implements the purchase-flow state machine
type cartService struct {
	numbers        *NumberService
	orderGateway   interfaces.OrderGateway
	eventPublisher interfaces.EventPublisher
	userID         string
}

// NewCartService creates a new cart service
func NewCartService(
	numbers *NumberService,
	orderGateway interfaces.OrderGateway,
	eventPublisher interfaces.EventPublisher,
	userID string,
) interfaces.CartService {
	return &cartService{
		numbers:        numbers,
		orderGateway:   orderGateway,
		eventPublisher: eventPublisher,
		userID:         userID,
	}
}

// SetRawInput replaces the raw numeric input, rebuilds the number set and
// clears any existing draft
func (s *cartService) SetRawInput(cart *entities.Cart, raw string) {
	cart.RawInput = s.numbers.SanitizeInput(raw)
	s.recompute(cart)
}

// SetDigitLengths replaces the digit-length selection, preserving the given
// insertion order, rebuilds the number set and clears any existing draft
func (s *cartService) SetDigitLengths(cart *entities.Cart, lengths []int) error {
	selection := make([]int, 0, len(lengths))
	for _, digit := range lengths {
		if digit < MinDigitLength || digit > MaxDigitLength {
			return fmt.Errorf("%w: %d", ErrInvalidDigitLength, digit)
		}
		if containsInt(selection, digit) {
			continue
		}
		selection = append(selection, digit)
	}
	cart.DigitLengths = selection
	s.recompute(cart)
	return nil
}

// SetBetAmount replaces the flat per-number bet amount and clears any
// existing draft. An empty amount is allowed here and caught by Validate.
func (s *cartService) SetBetAmount(cart *entities.Cart, amount string) error {
	amount = strings.TrimSpace(amount)
	if amount != "" {
		value, err := strconv.ParseFloat(amount, 64)
		if err != nil || value <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidBetAmount, amount)
		}
	}
	cart.BetAmount = amount
	s.invalidateDraft(cart)
	return nil
}

// SetLotteries replaces the lottery selection, unique by id, validated
// against the current catalog, and clears any existing draft
func (s *cartService) SetLotteries(cart *entities.Cart, ids []int64, catalog []entities.Lottery) error {
	selection := make([]int64, 0, len(ids))
	for _, id := range ids {
		if entities.FindLotteryByID(catalog, id) == nil {
			return fmt.Errorf("%w: id %d", ErrUnknownLottery, id)
		}
		if containsInt64(selection, id) {
			continue
		}
		selection = append(selection, id)
	}
	cart.SelectedLotteryIDs = selection
	s.invalidateDraft(cart)
	return nil
}

// RemoveNumber removes one ticket number from its digit bucket. This is the
// one mutation that keeps a placed draft alive: the draft is re-priced in
// place so a single bad number does not void an already-accepted order. When
// the removal empties the whole set the draft is cleared instead, since a
// zero-item order cannot stand.
func (s *cartService) RemoveNumber(cart *entities.Cart, digit, index int) error {
	if !cart.Numbers.RemoveAt(digit, index) {
		return fmt.Errorf("%w: digit %d index %d", ErrNumberNotFound, digit, index)
	}
	cart.UpdatedAt = time.Now().UTC()

	if cart.Draft == nil {
		return nil
	}
	if cart.Numbers.IsEmpty() {
		cart.Draft = nil
		return nil
	}

	total, err := s.ComputeLocalTotal(cart.Numbers.TotalCount(), cart.BetAmount, len(cart.SelectedLotteryIDs))
	if err != nil {
		return fmt.Errorf("failed to re-price draft: %w", err)
	}
	cart.Draft.TicketNumbers = cart.Numbers.Flatten()
	cart.Draft.LotteryIDs = append([]int64(nil), cart.SelectedLotteryIDs...)
	cart.Draft.LocalTotal = total
	cart.Draft.ReferenceTotal = utils.ToReferenceQuote(total)

	log.WithFields(log.Fields{
		"sessionID":  cart.SessionID,
		"orderID":    cart.Draft.OrderID,
		"localTotal": total,
	}).Info("re-priced placed draft after number removal")
	return nil
}

// Validate checks that the cart can be submitted. All four checks run in a
// fixed order and the first failure is returned.
func (s *cartService) Validate(cart *entities.Cart) error {
	if len(cart.SelectedLotteryIDs) == 0 {
		return ErrNoLotterySelected
	}
	if cart.Numbers.IsEmpty() {
		return ErrNoValidNumbers
	}
	if len(cart.DigitLengths) == 0 {
		return ErrNoDigitTypeSelected
	}
	if cart.BetAmount == "" {
		return ErrMissingBetAmount
	}
	return nil
}

// ComputeLocalTotal prices an order in the local currency: every playable
// number is purchased once per selected lottery at the flat bet amount.
func (s *cartService) ComputeLocalTotal(count int, betAmount string, lotteryCount int) (float64, error) {
	bet, err := strconv.ParseFloat(betAmount, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBetAmount, betAmount)
	}
	return float64(count) * bet * float64(lotteryCount), nil
}

// Submit places the order upstream. A second submit while any draft exists
// does not re-place the order; it short-circuits to the payment-method
// choice, which doubles as the double-submit guard. This covers drafts
// already awaiting payment too, so an abandoned payment step cannot produce
// a duplicate upstream order.
func (s *cartService) Submit(ctx context.Context, cart *entities.Cart) (*interfaces.SubmitResult, error) {
	if cart.Draft != nil {
		return &interfaces.SubmitResult{Draft: cart.Draft, ProceedToPayment: true}, nil
	}

	if err := s.Validate(cart); err != nil {
		return nil, err
	}

	total, err := s.ComputeLocalTotal(cart.Numbers.TotalCount(), cart.BetAmount, len(cart.SelectedLotteryIDs))
	if err != nil {
		return nil, err
	}
	referenceTotal := utils.ToReferenceQuote(total)

	confirmation, err := s.orderGateway.PlaceOrder(ctx, entities.OrderRequest{
		BetAmount:     cart.BetAmount,
		LotteryIDs:    append([]int64(nil), cart.SelectedLotteryIDs...),
		TicketNumbers: cart.Numbers.Flatten(),
		TotalPrice:    referenceTotal,
		UserID:        s.userID,
	})
	if err != nil {
		// The cart is left untouched so the user can retry without
		// re-entering anything.
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	cart.Draft = &entities.OrderDraft{
		State:           entities.DraftStatePlaced,
		TicketNumbers:   cart.Numbers.Flatten(),
		LotteryIDs:      append([]int64(nil), cart.SelectedLotteryIDs...),
		BetAmount:       cart.BetAmount,
		LocalTotal:      total,
		ReferenceTotal:  referenceTotal,
		OrderID:         confirmation.OrderID,
		PaymentIntentID: confirmation.PaymentIntentID,
		ClientSecret:    confirmation.ClientSecret,
		PlacedAt:        time.Now().UTC(),
	}
	cart.UpdatedAt = cart.Draft.PlacedAt

	log.WithFields(log.Fields{
		"sessionID":      cart.SessionID,
		"orderID":        confirmation.OrderID,
		"ticketCount":    cart.Numbers.TotalCount(),
		"localTotal":     total,
		"referenceTotal": referenceTotal,
	}).Info("order placed")

	if err := s.eventPublisher.Publish(events.OrderPlacedEvent{
		SessionID:      cart.SessionID,
		OrderID:        confirmation.OrderID,
		TicketCount:    cart.Numbers.TotalCount(),
		LotteryCount:   len(cart.SelectedLotteryIDs),
		LocalTotal:     total,
		ReferenceTotal: referenceTotal,
	}); err != nil {
		log.WithError(err).Warn("failed to publish order placed event")
	}

	return &interfaces.SubmitResult{Draft: cart.Draft}, nil
}

// BeginPayment transitions a placed draft to awaiting payment and returns
// the payment client secret, creating a payment intent when the order
// placement did not already yield one. A draft already awaiting payment is
// accepted so a closed payment sheet can be reopened without re-placing.
func (s *cartService) BeginPayment(ctx context.Context, cart *entities.Cart) (string, error) {
	if cart.Draft == nil {
		return "", ErrNoOrderDraft
	}

	if cart.Draft.ClientSecret == "" {
		amountMinor, err := utils.QuoteToMinorUnits(cart.Draft.ReferenceTotal)
		if err != nil {
			return "", fmt.Errorf("failed to convert total to minor units: %w", err)
		}
		secret, err := s.orderGateway.CreatePaymentIntent(ctx, amountMinor, cart.Draft.LotteryIDs[0])
		if err != nil {
			return "", fmt.Errorf("failed to create payment intent: %w", err)
		}
		cart.Draft.ClientSecret = secret
	}

	cart.Draft.BeginPayment()
	cart.UpdatedAt = time.Now().UTC()
	return cart.Draft.ClientSecret, nil
}

// ResolvePayment records the terminal outcome of a payment attempt. The
// draft is discarded on both outcomes once the payment step closes; only
// success additionally resets the whole form.
func (s *cartService) ResolvePayment(cart *entities.Cart, succeeded bool) *interfaces.PaymentOutcome {
	orderID := ""
	if cart.Draft != nil {
		orderID = cart.Draft.OrderID
	}
	cart.Draft = nil

	outcome := &interfaces.PaymentOutcome{Succeeded: succeeded}
	if succeeded {
		s.Reset(cart)
		outcome.FormReset = true
	} else {
		cart.UpdatedAt = time.Now().UTC()
	}

	log.WithFields(log.Fields{
		"sessionID": cart.SessionID,
		"orderID":   orderID,
		"succeeded": succeeded,
	}).Info("payment resolved")

	if err := s.eventPublisher.Publish(events.PaymentResolvedEvent{
		SessionID: cart.SessionID,
		OrderID:   orderID,
		Succeeded: succeeded,
	}); err != nil {
		log.WithError(err).Warn("failed to publish payment resolved event")
	}

	return outcome
}

// Reset returns the cart to its initial empty state
func (s *cartService) Reset(cart *entities.Cart) {
	cart.RawInput = ""
	cart.DigitLengths = nil
	cart.BetAmount = ""
	cart.SelectedLotteryIDs = nil
	cart.Numbers = entities.TicketNumberSet{}
	cart.Draft = nil
	cart.UpdatedAt = time.Now().UTC()
}

// PrefillFromOrder populates the cart from a prior order's detail lines:
// numbers deduplicated by the suffix rule, digit lengths inferred from the
// distinct lengths of the returned numbers, lotteries re-resolved by
// abbreviation against the current catalog. Unresolvable abbreviations are
// skipped; the catalog may have changed since the order was placed.
func (s *cartService) PrefillFromOrder(ctx context.Context, cart *entities.Cart, orderID string, catalog []entities.Lottery) error {
	details, err := s.orderGateway.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order %s: %w", orderID, err)
	}
	if len(details) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyOrder, orderID)
	}

	var rawNumbers []string
	for _, detail := range details {
		if detail.LotteryNumber != "" {
			rawNumbers = append(rawNumbers, detail.LotteryNumber)
		}
	}
	numbers := s.numbers.DedupeBySuffix(rawNumbers)

	var lengths []int
	for _, number := range numbers {
		length := len(number)
		if length < MinDigitLength || length > MaxDigitLength {
			continue
		}
		if !containsInt(lengths, length) {
			lengths = append(lengths, length)
		}
	}

	var lotteryIDs []int64
	for _, detail := range details {
		lottery := entities.FindLotteryByAbbreviation(catalog, detail.Abbreviation)
		if lottery == nil {
			log.WithFields(log.Fields{
				"orderID":      orderID,
				"abbreviation": detail.Abbreviation,
			}).Warn("order references lottery missing from current catalog")
			continue
		}
		if !containsInt64(lotteryIDs, lottery.ID) {
			lotteryIDs = append(lotteryIDs, lottery.ID)
		}
	}

	betAmount := ""
	for _, detail := range details {
		if detail.BetAmount != "" {
			betAmount = detail.BetAmount
			break
		}
	}

	cart.RawInput = strings.Join(numbers, ", ")
	cart.DigitLengths = lengths
	cart.SelectedLotteryIDs = lotteryIDs
	cart.BetAmount = betAmount
	s.recompute(cart)

	if err := s.eventPublisher.Publish(events.OrderReusedEvent{
		SessionID:     cart.SessionID,
		SourceOrderID: orderID,
		NumberCount:   len(numbers),
	}); err != nil {
		log.WithError(err).Warn("failed to publish order reused event")
	}

	return nil
}

// recompute rebuilds the ticket number set from the current raw input and
// digit selection, then invalidates the draft. Every setter that changes an
// upstream input funnels through here, making the invalidation rule an
// explicit call rather than an implicit subscription.
func (s *cartService) recompute(cart *entities.Cart) {
	cart.Numbers = s.numbers.Rebuild(cart.RawInput, cart.DigitLengths)
	s.invalidateDraft(cart)
}

func (s *cartService) invalidateDraft(cart *entities.Cart) {
	cart.Draft = nil
	cart.UpdatedAt = time.Now().UTC()
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func containsInt64(values []int64, v int64) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
