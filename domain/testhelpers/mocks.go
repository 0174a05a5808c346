package testhelpers

import (
	"context"

	"lotocart/domain/entities"
	"lotocart/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context) (*entities.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Cart), args.Error(1)
}

func (m *MockCartRepository) Get(ctx context.Context, sessionID string) (*entities.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *entities.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockOrderGateway is a mock implementation of OrderGateway
type MockOrderGateway struct {
	mock.Mock
}

func (m *MockOrderGateway) ListLotteries(ctx context.Context) ([]entities.Lottery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Lottery), args.Error(1)
}

func (m *MockOrderGateway) PlaceOrder(ctx context.Context, order entities.OrderRequest) (*entities.OrderConfirmation, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OrderConfirmation), args.Error(1)
}

func (m *MockOrderGateway) GetOrder(ctx context.Context, orderID string) ([]entities.OrderDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.OrderDetail), args.Error(1)
}

func (m *MockOrderGateway) CreatePaymentIntent(ctx context.Context, amountMinor int64, lotteryID int64) (string, error) {
	args := m.Called(ctx, amountMinor, lotteryID)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
