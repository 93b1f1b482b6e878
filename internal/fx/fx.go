// Package fx converts supplier prices to a common EUR base using an
// injected rate table. Rates come from configuration so alternate
// tables can be supplied in tests and updated without code changes.
package fx

// DefaultRates mirrors the sourcing team's static conversion table.
func DefaultRates() map[string]float64 {
	return map[string]float64{
		"USD": 0.93,
		"GBP": 1.2,
		"INR": 0.011,
		"JPY": 0.0061,
	}
}

// Converter applies a fixed currency-to-EUR rate table.
type Converter struct {
	rates map[string]float64
}

// New builds a Converter from the given rate table. A nil map yields a
// converter that passes every price through unchanged.
func New(rates map[string]float64) *Converter {
	if rates == nil {
		rates = map[string]float64{}
	}
	return &Converter{rates: rates}
}

// ToEUR converts price using the rate for code. Unknown codes pass the
// price through unconverted; that is the documented fallback, not an
// error. EUR itself is deliberately absent from the default table so
// EUR-denominated prices are never scaled.
func (c *Converter) ToEUR(price float64, code string) float64 {
	if rate, ok := c.rates[code]; ok {
		return price * rate
	}
	return price
}
