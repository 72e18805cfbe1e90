package money

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyPrefix is prepended to every rendered amount.
const CurrencyPrefix = "R$ "

// Amounts outside these bounds are treated as non-numeric. An exponent of
// 1e9 parses fine but any arithmetic on it would expand to a billion digits.
const (
	maxAmountText     = 64
	maxAmountExponent = 30
)

// Amount keeps a monetary value exactly as the upstream delivered it.
// Upstreams send both JSON numbers and strings; the text is parsed lazily so a
// malformed value never fails a whole collection decode.
type Amount string

// FromDecimal builds an Amount from a decimal value.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.String())
}

// FromFloat builds an Amount from a float, mostly useful in fixtures and tests.
func FromFloat(f float64) Amount {
	return FromDecimal(decimal.NewFromFloat(f))
}

// Decimal parses the amount. Non-numeric text yields zero.
func (a Amount) Decimal() decimal.Decimal {
	d, ok := a.parse()
	if !ok {
		return decimal.Zero
	}
	return d
}

// IsNumeric reports whether the amount parses as a number.
func (a Amount) IsNumeric() bool {
	_, ok := a.parse()
	return ok
}

// Label renders the amount with two decimal places, or the raw text when it is not numeric.
func (a Amount) Label() string {
	if d, ok := a.parse(); ok {
		return CurrencyPrefix + d.StringFixed(2)
	}
	return CurrencyPrefix + strings.TrimSpace(string(a))
}

func (a Amount) parse() (decimal.Decimal, bool) {
	raw := strings.TrimSpace(string(a))
	if raw == "" || len(raw) > maxAmountText {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, false
	}
	return d, true
}

// UnmarshalJSON accepts numbers, strings and null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*a = ""
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(raw)
	return nil
}

// MarshalJSON writes numeric amounts as JSON numbers and anything else as a string.
func (a Amount) MarshalJSON() ([]byte, error) {
	if d, ok := a.parse(); ok {
		return []byte(d.String()), nil
	}
	return json.Marshal(string(a))
}
