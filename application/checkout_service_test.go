package application

import (
	"context"
	"errors"
	"testing"

	"lotocart/domain/entities"
	"lotocart/domain/services"
	"lotocart/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubHandoff struct{}

func (stubHandoff) BuildHandoffURL(draft *entities.OrderDraft, catalog []entities.Lottery) string {
	return "https://wa.me/15550000000?text=order+" + draft.OrderID
}

type checkoutFixture struct {
	service   *CheckoutService
	repo      *testhelpers.MockCartRepository
	gateway   *testhelpers.MockOrderGateway
	publisher *testhelpers.MockEventPublisher
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	repo := new(testhelpers.MockCartRepository)
	gateway := new(testhelpers.MockOrderGateway)
	publisher := new(testhelpers.MockEventPublisher)
	carts := services.NewCartService(services.NewNumberService(), gateway, publisher, "377")
	return &checkoutFixture{
		service:   NewCheckoutService(carts, repo, gateway, stubHandoff{}),
		repo:      repo,
		gateway:   gateway,
		publisher: publisher,
	}
}

func TestGetSession(t *testing.T) {
	t.Parallel()

	t.Run("unknown session maps to not found", func(t *testing.T) {
		t.Parallel()
		f := newCheckoutFixture(t)
		f.repo.On("Get", mock.Anything, "missing").Return(nil, nil).Once()

		_, err := f.service.GetSession(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		t.Parallel()
		f := newCheckoutFixture(t)
		f.repo.On("Get", mock.Anything, "s1").Return(nil, errors.New("db down")).Once()

		_, err := f.service.GetSession(context.Background(), "s1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestUpdateInput(t *testing.T) {
	t.Parallel()

	t.Run("mutates and saves the cart", func(t *testing.T) {
		t.Parallel()
		f := newCheckoutFixture(t)
		cart := entities.NewCart("s1")
		cart.DigitLengths = []int{2}
		f.repo.On("Get", mock.Anything, "s1").Return(cart, nil).Once()
		f.repo.On("Save", mock.Anything, cart).Return(nil).Once()

		updated, err := f.service.UpdateInput(context.Background(), "s1", "1234")
		require.NoError(t, err)
		assert.Equal(t, "1234", updated.RawInput)
		assert.Equal(t, []string{"34"}, updated.Numbers.Bucket(2))
		f.repo.AssertExpectations(t)
	})

	t.Run("save failure surfaces", func(t *testing.T) {
		t.Parallel()
		f := newCheckoutFixture(t)
		cart := entities.NewCart("s1")
		f.repo.On("Get", mock.Anything, "s1").Return(cart, nil).Once()
		f.repo.On("Save", mock.Anything, cart).Return(errors.New("stale")).Once()

		_, err := f.service.UpdateInput(context.Background(), "s1", "12")
		assert.Error(t, err)
	})
}

func TestUpdateDigitLengthsDoesNotSaveOnError(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)
	cart := entities.NewCart("s1")
	f.repo.On("Get", mock.Anything, "s1").Return(cart, nil).Once()

	_, err := f.service.UpdateDigitLengths(context.Background(), "s1", []int{7})
	assert.ErrorIs(t, err, services.ErrInvalidDigitLength)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestListLotteriesCaching(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)
	catalog := []entities.Lottery{{ID: 1, Name: "Morning Draw", Abbreviation: "MD"}}
	f.gateway.On("ListLotteries", mock.Anything).Return(catalog, nil).Once()

	first, err := f.service.ListLotteries(context.Background())
	require.NoError(t, err)
	second, err := f.service.ListLotteries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The upstream call happened once; the second read came from the cache.
	f.gateway.AssertNumberOfCalls(t, "ListLotteries", 1)
}

func TestSubmitFlow(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)
	cart := entities.NewCart("s1")
	cart.DigitLengths = []int{2}
	cart.RawInput = "12"
	cart.Numbers = entities.TicketNumberSet{2: {"12"}}
	cart.BetAmount = "5"
	cart.SelectedLotteryIDs = []int64{1}

	f.repo.On("Get", mock.Anything, "s1").Return(cart, nil).Once()
	f.repo.On("Save", mock.Anything, cart).Return(nil).Once()
	f.gateway.On("PlaceOrder", mock.Anything, mock.Anything).
		Return(&entities.OrderConfirmation{OrderID: "ord-1"}, nil).Once()
	f.publisher.On("Publish", mock.AnythingOfType("events.OrderPlacedEvent")).Return(nil).Once()

	result, saved, err := f.service.Submit(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", result.Draft.OrderID)
	assert.True(t, saved.Draft.IsPlaced())
	f.repo.AssertExpectations(t)
}

func TestWhatsAppLink(t *testing.T) {
	t.Parallel()

	t.Run("requires a draft", func(t *testing.T) {
		t.Parallel()
		f := newCheckoutFixture(t)
		f.repo.On("Get", mock.Anything, "s1").Return(entities.NewCart("s1"), nil).Once()

		_, err := f.service.WhatsAppLink(context.Background(), "s1")
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("builds link from draft and catalog", func(t *testing.T) {
		t.Parallel()
		f := newCheckoutFixture(t)
		cart := entities.NewCart("s1")
		cart.Draft = &entities.OrderDraft{State: entities.DraftStatePlaced, OrderID: "ord-5"}
		f.repo.On("Get", mock.Anything, "s1").Return(cart, nil).Once()
		f.gateway.On("ListLotteries", mock.Anything).Return([]entities.Lottery{}, nil).Once()

		link, err := f.service.WhatsAppLink(context.Background(), "s1")
		require.NoError(t, err)
		assert.Contains(t, link, "ord-5")
	})
}

func TestReuseOrder(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)
	cart := entities.NewCart("s1")
	catalog := []entities.Lottery{{ID: 1, Name: "Morning Draw", Abbreviation: "MD"}}

	f.gateway.On("ListLotteries", mock.Anything).Return(catalog, nil).Once()
	f.gateway.On("GetOrder", mock.Anything, "ord-9").Return([]entities.OrderDetail{
		{LotteryNumber: "1234", BetAmount: "5", Abbreviation: "MD"},
	}, nil).Once()
	f.publisher.On("Publish", mock.AnythingOfType("events.OrderReusedEvent")).Return(nil).Once()
	f.repo.On("Get", mock.Anything, "s1").Return(cart, nil).Once()
	f.repo.On("Save", mock.Anything, cart).Return(nil).Once()

	updated, err := f.service.ReuseOrder(context.Background(), "s1", "ord-9")
	require.NoError(t, err)
	assert.Equal(t, "1234", updated.RawInput)
	assert.Equal(t, []int{4}, updated.DigitLengths)
	assert.Equal(t, []int64{1}, updated.SelectedLotteryIDs)
	assert.Equal(t, []string{"1234"}, updated.Numbers.Bucket(4))
}
