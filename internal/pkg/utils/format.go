package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"supervault_dashboard/internal/domain/entity"
)

// FormatAmount renders amount with thousands separators and a fixed number of
// decimal places, rounding half to even. Example: 1234567.891, 2 => "1,234,567.89".
func FormatAmount(amount decimal.Decimal, decimalPlaces int32) string {
	fixed := amount.StringFixedBank(max(decimalPlaces, 0))

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(fixed, ".")

	whole, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return sign + fixed
	}
	out := sign + humanize.BigComma(whole)
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

// FormatPercentage renders a percentage value, e.g. 12.345, 2 => "12.35%".
func FormatPercentage(percentage float64, decimalPlaces int) string {
	if decimalPlaces < 0 {
		decimalPlaces = 0
	}
	return fmt.Sprintf("%.*f%%", decimalPlaces, percentage)
}

// WeiToUnits converts a raw integer amount into token units given the token decimals.
// Malformed input yields zero.
func WeiToUnits(wei entity.Amount, decimals int32) decimal.Decimal {
	return wei.Decimal().Shift(-decimals)
}

// FormatUnits converts wei into token units and renders them with places decimals.
func FormatUnits(wei entity.Amount, decimals int32, places int32) string {
	return WeiToUnits(wei, decimals).StringFixed(places)
}

// TruncateAddress shortens an address for display keeping chars characters on
// each side after the 0x prefix: "0x1234...cdef".
func TruncateAddress(address string, chars int) string {
	if len(address) <= 2*chars {
		return address
	}
	return address[:chars+2] + "..." + address[len(address)-chars:]
}

// ShortAddress is the manager/allocation table form: addresses longer than 12
// characters become 0xABCD...WXYZ.
func ShortAddress(address string) string {
	if len(address) > 12 {
		return TruncateAddress(address, 4)
	}
	return address
}
