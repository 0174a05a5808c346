package infrastructure

import (
	"fmt"
	"net/url"
	"strings"

	"lotocart/domain/entities"
	"lotocart/domain/utils"
)

// WhatsAppHandoff builds wa.me deep links carrying an order summary. This is
// the manual payment path: the message is composed here, but confirmation
// happens entirely out-of-band and the order stays pending until reconciled.
type WhatsAppHandoff struct {
	phone string
}

// NewWhatsAppHandoff creates a handoff builder for the configured phone number
func NewWhatsAppHandoff(phone string) *WhatsAppHandoff {
	return &WhatsAppHandoff{phone: phone}
}

// BuildHandoffURL renders a placed draft into a wa.me URL with the receipt
// numbers, the selected lotteries, the placement date and the total in all
// three currencies
func (w *WhatsAppHandoff) BuildHandoffURL(draft *entities.OrderDraft, catalog []entities.Lottery) string {
	var names []string
	for _, id := range draft.LotteryIDs {
		if lottery := entities.FindLotteryByID(catalog, id); lottery != nil {
			names = append(names, lottery.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order %s\n", draft.OrderID)
	fmt.Fprintf(&b, "Date: %s\n", draft.PlacedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Numbers: %s\n", strings.Join(draft.TicketNumbers, ", "))
	fmt.Fprintf(&b, "Lotteries: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Bet per number: %s\n", draft.BetAmount)
	fmt.Fprintf(&b, "Total: %.2f / %s / %s",
		draft.LocalTotal,
		utils.ToSecondaryQuote(draft.LocalTotal),
		draft.ReferenceTotal,
	)

	return fmt.Sprintf("https://wa.me/%s?text=%s", w.phone, url.QueryEscape(b.String()))
}
