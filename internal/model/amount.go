package model

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Tolerance is the largest difference still treated as balanced.
var Tolerance = decimal.NewFromFloat(0.01)

// ParseAmount parses a user-entered figure. Anything that is not a number
// becomes zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Amount is a decimal that decodes from a JSON number or string and
// falls back to zero on anything malformed.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			s = ""
		}
		a.Decimal = ParseAmount(s)
		return nil
	}
	a.Decimal = ParseAmount(string(data))
	return nil
}

// MarshalJSON writes the amount as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
