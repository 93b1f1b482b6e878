package fx

import "testing"

func TestToEUR_KnownCurrencies(t *testing.T) {
	conv := New(DefaultRates())

	cases := []struct {
		price float64
		code  string
		want  float64
	}{
		{10, "USD", 9.3},
		{10, "GBP", 12},
		{1000, "INR", 11},
		{1000, "JPY", 6.1},
	}
	for _, c := range cases {
		got := conv.ToEUR(c.price, c.code)
		if diff := got - c.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("ToEUR(%v, %s) = %v, want %v", c.price, c.code, got, c.want)
		}
	}
}

func TestToEUR_UnknownCodePassesThrough(t *testing.T) {
	conv := New(DefaultRates())
	if got := conv.ToEUR(42.5, "CHF"); got != 42.5 {
		t.Errorf("unknown code scaled the price: %v", got)
	}
}

func TestToEUR_EURNeverScaled(t *testing.T) {
	// EUR is absent from the table on purpose; already-EUR prices fall
	// through unconverted.
	conv := New(DefaultRates())
	if got := conv.ToEUR(12, "EUR"); got != 12 {
		t.Errorf("EUR price scaled: %v", got)
	}
}

func TestNew_NilRates(t *testing.T) {
	conv := New(nil)
	if got := conv.ToEUR(7, "USD"); got != 7 {
		t.Errorf("nil rate table must pass through: %v", got)
	}
}
