package entities

// OrderRequest carries everything the upstream place-order call needs. Field
// names on the wire are fixed by the upstream contract; the gateway maps this
// struct onto them.
type OrderRequest struct {
	BetAmount     string
	LotteryIDs    []int64
	TicketNumbers []string
	TotalPrice    string
	UserID        string
}

// OrderConfirmation is the upstream response to a successfully placed order.
type OrderConfirmation struct {
	OrderID         string
	PaymentIntentID string
	ClientSecret    string
}

// OrderDetail is one line of a previously placed order, as returned by the
// order-detail endpoint. Used to render receipts and to prefill a new cart
// from a prior order.
type OrderDetail struct {
	LotteryNumber string `json:"lottery_number"`
	BetAmount     string `json:"bet_amount"`
	Abbreviation  string `json:"abbreviation"`
}
