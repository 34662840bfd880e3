package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	c := New("USD", map[string]float64{"EUR": 0.92, "JPY": 149.50})

	got, err := c.Convert(100, "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 92.0, got, 1e-9)

	// Reference currency is identity.
	got, err = c.Convert(100, "USD")
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)

	_, err = c.Convert(100, "CHF")
	require.Error(t, err)
	assert.Equal(t, "Unsupported currency", err.Error())
}

func TestFormat(t *testing.T) {
	c := New("USD", map[string]float64{"EUR": 0.92})

	// Exact rendering is locale-data dependent; assert symbol and magnitude.
	usd := c.Format(12.34, "USD", "en-US")
	assert.Contains(t, usd, "$")
	assert.Contains(t, usd, "12.34")

	eur := c.Format(100, "EUR", "de-DE")
	assert.Contains(t, eur, "€")
	assert.Contains(t, eur, "92")
}

// An unknown target currency falls back to the unconverted reference amount.
func TestFormat_UnsupportedFallsBack(t *testing.T) {
	c := New("USD", nil)

	got := c.Format(50, "XYZ", "en-US")
	assert.Contains(t, got, "$")
	assert.Contains(t, got, "50")
}

func TestFormat_BadLocaleFallsBack(t *testing.T) {
	c := New("USD", nil)

	got := c.Format(1, "USD", "!!")
	assert.Contains(t, got, "$")
}
