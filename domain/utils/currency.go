package utils

import (
	"fmt"
	"math"
	"strconv"
)

// Fixed conversion rates between the local currency and the two reference
// currencies. These are configuration constants, not live market data;
// callers must not treat the quotes as exchange rates.
const (
	// SecondaryRate converts a local amount by multiplication.
	SecondaryRate = 0.6
	// ReferenceDivisor converts a local amount by division. The reference
	// quote is the authoritative amount sent to the payment processor.
	ReferenceDivisor = 1.75
)

// ToSecondaryQuote converts a local-currency amount to the secondary
// currency, rounded to two decimals.
func ToSecondaryQuote(amount float64) string {
	return formatQuote(amount * SecondaryRate)
}

// ToReferenceQuote converts a local-currency amount to the reference
// currency, rounded to two decimals.
func ToReferenceQuote(amount float64) string {
	return formatQuote(amount / ReferenceDivisor)
}

// QuoteToMinorUnits converts a two-decimal quote string into integer minor
// units (cents) for the payment-intent call.
func QuoteToMinorUnits(quote string) (int64, error) {
	value, err := strconv.ParseFloat(quote, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quote %q: %w", quote, err)
	}
	return int64(math.Round(value * 100)), nil
}

func formatQuote(value float64) string {
	// Round half away from zero before formatting so x.005 quotes round up.
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', 2, 64)
}
