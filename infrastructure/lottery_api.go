package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lotocart/domain/entities"
	"lotocart/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const defaultAPITimeout = 15 * time.Second

// Wire payloads of the upstream lottery API. The field names are fixed by the
// upstream contract and must not be changed.
type lotteriesResponse struct {
	Result []entities.Lottery `json:"result"`
}

type placeOrderLine struct {
	BetAmount     string   `json:"bet_amount"`
	LotteryID     []int64  `json:"lottery_id"`
	LotteryNumber []string `json:"lottery_number"`
}

type placeOrderRequest struct {
	UserOrder  []placeOrderLine `json:"userorder"`
	TotalPrice string           `json:"total_price"`
	UserID     string           `json:"user_id"`
}

type placeOrderResponse struct {
	Success bool `json:"success"`
	Data    struct {
		OrderID         string `json:"order_id"`
		PaymentIntentID string `json:"payment_intent_id"`
		ClientSecret    string `json:"client_secret"`
	} `json:"data"`
}

type orderDetailResponse struct {
	Result struct {
		Details []entities.OrderDetail `json:"details"`
	} `json:"result"`
}

type paymentIntentRequest struct {
	Amount    int64 `json:"amount"`
	LotteryID int64 `json:"lotteryId"`
}

type paymentIntentResponse struct {
	Result struct {
		ClientSecret string `json:"clientSecret"`
	} `json:"result"`
}

// LotteryAPIClient implements the OrderGateway interface against the upstream
// lottery HTTP API
type LotteryAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewLotteryAPIClient creates a new lottery API client
func NewLotteryAPIClient(baseURL string) interfaces.OrderGateway {
	return &LotteryAPIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultAPITimeout},
	}
}

// ListLotteries fetches the current lottery catalog
func (c *LotteryAPIClient) ListLotteries(ctx context.Context) ([]entities.Lottery, error) {
	var resp lotteriesResponse
	if err := c.get(ctx, "/lotteries", &resp); err != nil {
		return nil, fmt.Errorf("failed to list lotteries: %w", err)
	}
	return resp.Result, nil
}

// PlaceOrder submits a priced order and returns the server's confirmation
func (c *LotteryAPIClient) PlaceOrder(ctx context.Context, order entities.OrderRequest) (*entities.OrderConfirmation, error) {
	req := placeOrderRequest{
		UserOrder: []placeOrderLine{{
			BetAmount:     order.BetAmount,
			LotteryID:     order.LotteryIDs,
			LotteryNumber: order.TicketNumbers,
		}},
		TotalPrice: order.TotalPrice,
		UserID:     order.UserID,
	}

	var resp placeOrderResponse
	if err := c.post(ctx, "/place-order", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("upstream rejected order placement")
	}

	return &entities.OrderConfirmation{
		OrderID:         resp.Data.OrderID,
		PaymentIntentID: resp.Data.PaymentIntentID,
		ClientSecret:    resp.Data.ClientSecret,
	}, nil
}

// GetOrder fetches the detail lines of a previously placed order
func (c *LotteryAPIClient) GetOrder(ctx context.Context, orderID string) ([]entities.OrderDetail, error) {
	var resp orderDetailResponse
	if err := c.get(ctx, "/order/"+orderID, &resp); err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return resp.Result.Details, nil
}

// CreatePaymentIntent requests a payment client secret for the given amount
// in minor units
func (c *LotteryAPIClient) CreatePaymentIntent(ctx context.Context, amountMinor int64, lotteryID int64) (string, error) {
	req := paymentIntentRequest{Amount: amountMinor, LotteryID: lotteryID}

	var resp paymentIntentResponse
	if err := c.post(ctx, "/create-payment-intent", req, &resp); err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	if resp.Result.ClientSecret == "" {
		return "", fmt.Errorf("upstream returned empty client secret")
	}
	return resp.Result.ClientSecret, nil
}

func (c *LotteryAPIClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *LotteryAPIClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *LotteryAPIClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.WithFields(log.Fields{
			"url":    req.URL.String(),
			"status": resp.StatusCode,
		}).Warn("upstream API returned non-2xx status")
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
