package render

import (
	"math"
	"strconv"
	"strings"
)

// fallbackValue replaces empty or missing resolved values in document text.
const fallbackValue = "N/A"

// currencySymbol prefixes every money value in a document.
const currencySymbol = "$"

// FormatCurrency renders an amount with exactly two decimal digits, comma
// grouping, and the currency symbol. Every money display in a document goes
// through this one formatter so resolved variables, table cells, and summary
// rows agree bit for bit.
func FormatCurrency(amount float64) string {
	negative := math.Signbit(amount) && amount != 0
	fixed := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(currencySymbol)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a percentage with at most one decimal digit.
func FormatPercent(value float64) string {
	rounded := math.Round(value*10) / 10
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 0, 64) + "%"
	}
	return strconv.FormatFloat(rounded, 'f', 1, 64) + "%"
}

// FormatQuantity renders a quantity without trailing zeros.
func FormatQuantity(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// sanitizeValue strips control characters and maps empty results to the
// fixed fallback string.
func sanitizeValue(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, value)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return fallbackValue
	}
	return cleaned
}
