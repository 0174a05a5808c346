package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lotocart/domain/entities"
	"lotocart/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// Errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoDraft         = errors.New("no order draft for session")
)

const catalogCacheTTL = 5 * time.Minute

// HandoffBuilder renders a placed draft into an external payment hand-off URL
type HandoffBuilder interface {
	BuildHandoffURL(draft *entities.OrderDraft, catalog []entities.Lottery) string
}

// CheckoutService orchestrates the purchase flow: it owns the load-mutate-save
// cycle around the session store and delegates all state transitions to the
// cart service. One actor drives a session at a time; concurrent saves are
// caught by the repository's version check.
type CheckoutService struct {
	carts   interfaces.CartService
	repo    interfaces.CartRepository
	gateway interfaces.OrderGateway
	handoff HandoffBuilder

	catalogMu        sync.Mutex
	catalog          []entities.Lottery
	catalogFetchedAt time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	carts interfaces.CartService,
	repo interfaces.CartRepository,
	gateway interfaces.OrderGateway,
	handoff HandoffBuilder,
) *CheckoutService {
	return &CheckoutService{
		carts:   carts,
		repo:    repo,
		gateway: gateway,
		handoff: handoff,
	}
}

// CreateSession creates a new empty cart session
func (s *CheckoutService) CreateSession(ctx context.Context) (*entities.Cart, error) {
	cart, err := s.repo.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.WithField("sessionID", cart.SessionID).Info("created cart session")
	return cart, nil
}

// GetSession returns the cart for a session
func (s *CheckoutService) GetSession(ctx context.Context, sessionID string) (*entities.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if cart == nil {
		return nil, ErrSessionNotFound
	}
	return cart, nil
}

// ListLotteries returns the lottery catalog, cached briefly so every keystroke
// against the cart does not hit the upstream API
func (s *CheckoutService) ListLotteries(ctx context.Context) ([]entities.Lottery, error) {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	if s.catalog != nil && time.Since(s.catalogFetchedAt) < catalogCacheTTL {
		return s.catalog, nil
	}

	catalog, err := s.gateway.ListLotteries(ctx)
	if err != nil {
		if s.catalog != nil {
			log.WithError(err).Warn("catalog refresh failed, serving cached catalog")
			return s.catalog, nil
		}
		return nil, fmt.Errorf("failed to list lotteries: %w", err)
	}

	s.catalog = catalog
	s.catalogFetchedAt = time.Now()
	return catalog, nil
}

// UpdateInput replaces the session's raw numeric input
func (s *CheckoutService) UpdateInput(ctx context.Context, sessionID, raw string) (*entities.Cart, error) {
	return s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		s.carts.SetRawInput(cart, raw)
		return nil
	})
}

// UpdateDigitLengths replaces the session's digit-length selection
func (s *CheckoutService) UpdateDigitLengths(ctx context.Context, sessionID string, lengths []int) (*entities.Cart, error) {
	return s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		return s.carts.SetDigitLengths(cart, lengths)
	})
}

// UpdateBetAmount replaces the session's bet amount
func (s *CheckoutService) UpdateBetAmount(ctx context.Context, sessionID, amount string) (*entities.Cart, error) {
	return s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		return s.carts.SetBetAmount(cart, amount)
	})
}

// UpdateLotteries replaces the session's lottery selection
func (s *CheckoutService) UpdateLotteries(ctx context.Context, sessionID string, ids []int64) (*entities.Cart, error) {
	catalog, err := s.ListLotteries(ctx)
	if err != nil {
		return nil, err
	}
	return s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		return s.carts.SetLotteries(cart, ids, catalog)
	})
}

// RemoveNumber removes one derived ticket number from the session
func (s *CheckoutService) RemoveNumber(ctx context.Context, sessionID string, digit, index int) (*entities.Cart, error) {
	return s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		return s.carts.RemoveNumber(cart, digit, index)
	})
}

// Submit places the session's order upstream
func (s *CheckoutService) Submit(ctx context.Context, sessionID string) (*interfaces.SubmitResult, *entities.Cart, error) {
	var result *interfaces.SubmitResult
	cart, err := s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		var err error
		result, err = s.carts.Submit(ctx, cart)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return result, cart, nil
}

// BeginPayment starts the card payment step for a placed draft
func (s *CheckoutService) BeginPayment(ctx context.Context, sessionID string) (string, *entities.Cart, error) {
	var secret string
	cart, err := s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		var err error
		secret, err = s.carts.BeginPayment(ctx, cart)
		return err
	})
	if err != nil {
		return "", nil, err
	}
	return secret, cart, nil
}

// ResolvePayment records the terminal outcome of a payment attempt
func (s *CheckoutService) ResolvePayment(ctx context.Context, sessionID string, succeeded bool) (*interfaces.PaymentOutcome, *entities.Cart, error) {
	var outcome *interfaces.PaymentOutcome
	cart, err := s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		outcome = s.carts.ResolvePayment(cart, succeeded)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outcome, cart, nil
}

// Reset returns the session's cart to its initial empty state
func (s *CheckoutService) Reset(ctx context.Context, sessionID string) (*entities.Cart, error) {
	return s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		s.carts.Reset(cart)
		return nil
	})
}

// ReuseOrder prefills the session's cart from a prior order
func (s *CheckoutService) ReuseOrder(ctx context.Context, sessionID, orderID string) (*entities.Cart, error) {
	catalog, err := s.ListLotteries(ctx)
	if err != nil {
		return nil, err
	}
	return s.withCart(ctx, sessionID, func(cart *entities.Cart) error {
		return s.carts.PrefillFromOrder(ctx, cart, orderID, catalog)
	})
}

// OrderReceipt fetches the detail lines of a previously placed order
func (s *CheckoutService) OrderReceipt(ctx context.Context, orderID string) ([]entities.OrderDetail, error) {
	return s.gateway.GetOrder(ctx, orderID)
}

// WhatsAppLink builds the manual payment hand-off URL for the session's draft
func (s *CheckoutService) WhatsAppLink(ctx context.Context, sessionID string) (string, error) {
	cart, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if cart.Draft == nil {
		return "", ErrNoDraft
	}

	catalog, err := s.ListLotteries(ctx)
	if err != nil {
		return "", err
	}
	return s.handoff.BuildHandoffURL(cart.Draft, catalog), nil
}

// withCart runs one mutation inside a load-mutate-save cycle. Mutation errors
// abort the save so a failed transition never persists partial state.
func (s *CheckoutService) withCart(ctx context.Context, sessionID string, fn func(*entities.Cart) error) (*entities.Cart, error) {
	cart, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := fn(cart); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return cart, nil
}
