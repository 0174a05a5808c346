package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSecondaryQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "whole amount", amount: 30, expected: "18.00"},
		{name: "fractional result rounded", amount: 5.55, expected: "3.33"},
		{name: "zero", amount: 0, expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ToSecondaryQuote(tt.amount))
		})
	}
}

func TestToReferenceQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "whole amount", amount: 17.5, expected: "10.00"},
		{name: "fractional result rounded", amount: 30, expected: "17.14"},
		{name: "zero", amount: 0, expected: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ToReferenceQuote(tt.amount))
		})
	}
}

func TestQuoteToMinorUnits(t *testing.T) {
	t.Parallel()

	minor, err := QuoteToMinorUnits("17.14")
	require.NoError(t, err)
	assert.Equal(t, int64(1714), minor)

	minor, err = QuoteToMinorUnits("10.00")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), minor)

	_, err = QuoteToMinorUnits("not-a-number")
	assert.Error(t, err)
}
