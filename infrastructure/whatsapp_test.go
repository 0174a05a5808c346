package infrastructure

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"lotocart/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHandoffURL(t *testing.T) {
	t.Parallel()

	catalog := []entities.Lottery{
		{ID: 1, Name: "Morning Draw", Abbreviation: "MD"},
		{ID: 2, Name: "Evening Draw", Abbreviation: "ED"},
	}
	draft := &entities.OrderDraft{
		State:          entities.DraftStatePlaced,
		TicketNumbers:  []string{"34", "56", "234"},
		LotteryIDs:     []int64{1, 2},
		BetAmount:      "5",
		LocalTotal:     30,
		ReferenceTotal: "17.14",
		OrderID:        "ord-1",
		PlacedAt:       time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC),
	}

	handoff := NewWhatsAppHandoff("15551234567")
	link := handoff.BuildHandoffURL(draft, catalog)

	require.True(t, strings.HasPrefix(link, "https://wa.me/15551234567?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, "Order ord-1")
	assert.Contains(t, text, "Date: 2026-08-14")
	assert.Contains(t, text, "Numbers: 34, 56, 234")
	assert.Contains(t, text, "Lotteries: Morning Draw, Evening Draw")
	assert.Contains(t, text, "Bet per number: 5")
	// Local, secondary and reference totals all appear.
	assert.Contains(t, text, "Total: 30.00 / 18.00 / 17.14")
}

func TestBuildHandoffURLSkipsUnknownLotteries(t *testing.T) {
	t.Parallel()

	draft := &entities.OrderDraft{
		TicketNumbers: []string{"12"},
		LotteryIDs:    []int64{99},
		LocalTotal:    5,
	}

	handoff := NewWhatsAppHandoff("15551234567")
	link := handoff.BuildHandoffURL(draft, nil)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, parsed.Query().Get("text"), "Lotteries: \n")
}
