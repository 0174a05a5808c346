package interfaces

import (
	"context"

	"lotocart/domain/entities"
)

// OrderGateway defines the interface to the upstream lottery/order API. The
// implementation owns the wire contract; the core only sees typed structs.
type OrderGateway interface {
	// ListLotteries fetches the current lottery catalog
	ListLotteries(ctx context.Context) ([]entities.Lottery, error)

	// PlaceOrder submits a priced order and returns the server's confirmation
	PlaceOrder(ctx context.Context, order entities.OrderRequest) (*entities.OrderConfirmation, error)

	// GetOrder fetches the detail lines of a previously placed order
	GetOrder(ctx context.Context, orderID string) ([]entities.OrderDetail, error)

	// CreatePaymentIntent requests a payment client secret for the given
	// amount in minor units
	CreatePaymentIntent(ctx context.Context, amountMinor int64, lotteryID int64) (string, error)
}
