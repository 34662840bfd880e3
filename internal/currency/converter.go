package currency

import (
	"errors"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Converter turns reference-currency amounts into display strings. Conversion
// is presentation-only: stored and compared values never leave the reference
// currency.
type Converter struct {
	Reference string
	Rates     map[string]float64
}

// New builds a converter; the reference currency always has rate 1.
func New(reference string, rates map[string]float64) *Converter {
	if rates == nil {
		rates = map[string]float64{}
	}
	rates[reference] = 1.0
	return &Converter{Reference: reference, Rates: rates}
}

// Convert returns the amount in the target currency, or an error when no rate
// is configured.
func (c *Converter) Convert(amount float64, target string) (float64, error) {
	rate, ok := c.Rates[target]
	if !ok {
		return 0, errors.New("Unsupported currency")
	}
	return amount * rate, nil
}

// Format converts and renders an amount for display, e.g. "€12.34" for
// ("EUR", "de-DE"). Falls back to the reference currency when the target has
// no rate, and to en-US when the locale doesn't parse.
func (c *Converter) Format(amount float64, target, locale string) string {
	converted, err := c.Convert(amount, target)
	if err != nil {
		target = c.Reference
		converted = amount
	}

	unit, err := currency.ParseISO(target)
	if err != nil {
		unit = currency.USD
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%v", currency.NarrowSymbol(unit.Amount(converted)))
}
