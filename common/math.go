package common

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseUnits converts a human readable amount to its integer representation
// with the given number of decimals.
// Example:
// - ParseUnits("10", 18) = 10000000000000000000
// - ParseUnits("0.5", 3) = 500
func ParseUnits(value string, decimals int32) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("invalid amount: empty string")
	}
	// decimal accepts exponents, parseEther does not
	if strings.ContainsAny(value, "eE") {
		return nil, fmt.Errorf("invalid amount %q: exponent notation is not supported", value)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("invalid amount %q: negative", value)
	}
	shifted := d.Shift(decimals)
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, fmt.Errorf("invalid amount %q: more than %d decimals", value, decimals)
	}
	return shifted.BigInt(), nil
}

// ParseEther is ParseUnits with 18 decimals.
func ParseEther(value string) (*big.Int, error) {
	return ParseUnits(value, 18)
}

// FormatUnits is the inverse of ParseUnits.
// Example:
// - FormatUnits(1100, 3) = "1.1"
// - FormatUnits(1100, 2) = "11"
func FormatUnits(value *big.Int, decimals int32) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -decimals).String()
}

func GweiToWei(n float64) *big.Int {
	return decimal.NewFromFloat(n).Shift(9).BigInt()
}
