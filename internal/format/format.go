package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is rendered wherever a value is absent or not numeric.
const Placeholder = "N/A"

// Price renders a USD amount with thousands separators and at most two
// decimal places. Zero and NaN render as the placeholder.
func Price(price float64) string {
	if price == 0 || math.IsNaN(price) {
		return Placeholder
	}
	return "$" + groupThousands(trimDecimals(price, 2))
}

// Change renders a signed 24h percentage change with two decimals.
func Change(change float64) string {
	if math.IsNaN(change) {
		return Placeholder
	}
	return Percentage(change, 2)
}

// Percentage renders a signed percentage with the given decimals.
func Percentage(value float64, decimals int) string {
	if math.IsNaN(value) {
		return Placeholder
	}
	sign := ""
	if value >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.*f%%", sign, decimals, value)
}

// MarketCap renders a market capitalisation scaled to T/B/M/K.
func MarketCap(marketCap float64) string {
	return magnitude(marketCap)
}

// Volume renders a 24h traded volume scaled to T/B/M/K.
func Volume(volume float64) string {
	return magnitude(volume)
}

func magnitude(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return Placeholder
	}
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.2fK", v/1e3)
	default:
		return Price(v)
	}
}

// trimDecimals rounds to at most n decimal places and drops trailing zeros.
func trimDecimals(v float64, n int) string {
	pow := math.Pow(10, float64(n))
	rounded := math.Round(v*pow) / pow
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// groupThousands inserts comma separators into the integer part of s.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
