package textutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{in: "20 999₴", expected: "20999"},
		{in: "20 999 ₴", expected: "20999"},
		{in: "1,299.99 $", expected: "1299.99"},
		{in: "12,50 грн", expected: "12.5"},
		{in: "0", expected: "0"},
		{in: "  7. ", expected: "7"},
		{in: "1.299,99 €", expected: "1299.99"},
		{in: "1 299,99 грн", expected: "1299.99"},
		{in: "1,299 $", expected: "1299"},
		{in: "12.500 ₴", expected: "12500"},
		{in: "1,234,567.89", expected: "1234567.89"},
		{in: "1.234.567", expected: "1234567"},
		{in: "0,500", expected: "0.5"},
		{in: "1299.999", expected: "1299.999"},
	}
	for _, c := range cases {
		price, err := ParsePrice(c.in)
		require.NoError(t, err, c.in)
		require.True(t, price.Equal(decimal.RequireFromString(c.expected)), "%s parsed as %s", c.in, price)
	}
}

func TestParsePriceErrors(t *testing.T) {
	_, err := ParsePrice("Немає в наявності")
	require.True(t, errors.Is(err, ErrNoDigits))

	for _, text := range []string{"1.2.3", "1,2,3", "12,34,56", "1.2,3.4", "1234,567.8"} {
		_, err = ParsePrice(text)
		require.True(t, errors.Is(err, ErrAmbiguousPrice), "%s: %v", text, err)
	}
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("Немає в наявності", []string{"немає в наявності"}))
	require.True(t, MatchName("Currently OUT of stock", []string{"out of stock"}))
	require.False(t, MatchName("Є в наявності", []string{"немає в наявності", ""}))
}
