// Package currency formats monetary amounts for the report presentation surface.
// Amounts are rupee values rendered with the ₹ prefix and Indian digit grouping
// (thousand, then lakh/crore pairs): 1234567.8 → "₹12,34,567.80".
package currency

import (
	"fmt"
	"math"
	"strings"
)

// Symbol is the prefix applied to every formatted amount.
const Symbol = "₹"

// FormatINR renders amount with the rupee symbol, Indian digit grouping, and two
// decimal places. Negative amounts keep the sign ahead of the symbol, matching
// how refunds were shown on the legacy screen.
func FormatINR(amount float64) string {
	sign := ""
	if math.Signbit(amount) {
		sign = "-"
		amount = math.Abs(amount)
	}

	// Round to paise first so 99.999 groups as 100.00, not 99.100.
	amount = math.Round(amount*100) / 100
	whole := int64(amount)
	paise := int64(math.Round((amount - float64(whole)) * 100))

	return fmt.Sprintf("%s%s%s.%02d", sign, Symbol, groupIndian(whole), paise)
}

// groupIndian inserts commas after the first three digits from the right, then
// every two digits: 1234567 → "12,34,567".
func groupIndian(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
