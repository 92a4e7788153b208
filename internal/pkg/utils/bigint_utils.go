package utils

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultDisplayDecimals is the number of fractional digits kept by FormatTokenBalance.
const DefaultDisplayDecimals int32 = 4

// ParseBigInt parses a base-10 integer string. Empty input parses as zero.
func ParseBigInt(raw string) (*big.Int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}
	return v, nil
}

// FormatTokenBalance converts a raw smallest-unit amount into a human-readable
// decimal, truncated (not rounded) to displayDecimals fractional digits.
// Example: raw="1234500000000000000", decimals=18 => "1.2345"
// Unparseable input formats as "0".
func FormatTokenBalance(raw string, decimals, displayDecimals int32) string {
	amount, err := ParseBigInt(raw)
	if err != nil || amount.Sign() == 0 {
		return "0"
	}
	if decimals < 0 {
		decimals = 0
	}
	if displayDecimals < 0 {
		displayDecimals = 0
	}

	value := decimal.NewFromBigInt(amount, -decimals).Truncate(displayDecimals)
	return value.String()
}

// SumProducts returns the sum of a[i]*b[i] over all pairs.
func SumProducts(pairs [][2]string) (*big.Int, error) {
	total := new(big.Int)
	for _, p := range pairs {
		x, err := ParseBigInt(p[0])
		if err != nil {
			return nil, err
		}
		y, err := ParseBigInt(p[1])
		if err != nil {
			return nil, err
		}
		total.Add(total, new(big.Int).Mul(x, y))
	}
	return total, nil
}
