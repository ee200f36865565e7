package entity

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"
)

// Amount is a raw on-chain quantity as returned by the pricing API.
// The API is not consistent about encoding large integers, so both JSON
// strings ("1000000") and bare numbers (1000000) are accepted and kept verbatim.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(data)
	return nil
}

// Decimal parses the amount. Empty or malformed values yield zero.
func (a Amount) Decimal() decimal.Decimal {
	if a == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(string(a))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Float64 returns the amount as a float, zero when it cannot be parsed.
func (a Amount) Float64() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

// String implements fmt.Stringer.
func (a Amount) String() string {
	if a == "" {
		return "0"
	}
	return string(a)
}
