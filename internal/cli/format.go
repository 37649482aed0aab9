package cli

import (
	"fmt"
	"strings"
)

// FormatPrice formats a price in dollars with thousands separators.
func FormatPrice(price float64) string {
	negative := price < 0
	if negative {
		price = -price
	}

	str := fmt.Sprintf("%.2f", price)
	parts := strings.Split(str, ".")
	formatted := groupThousands(parts[0])

	result := "$" + formatted + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatSigned formats a profit/loss figure with an explicit sign.
func FormatSigned(amount float64) string {
	if amount >= 0 {
		return "+" + FormatPrice(amount)
	}
	return FormatPrice(amount)
}

// FormatPercent formats a percentage with one decimal place.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatGreek formats a Greek value with four decimal places.
func FormatGreek(value float64) string {
	return fmt.Sprintf("%.4f", value)
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
