// Package money formats minor-unit amounts for display. All amounts in the
// system are integers in kobo; conversion to naira happens here and nowhere
// else.
package money

import (
	"fmt"
	"strconv"
)

// FormatKobo renders an amount in kobo as a naira string, e.g. 123456 -> "₦1,234.56".
func FormatKobo(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	naira := amount / 100
	kobo := amount % 100
	return fmt.Sprintf("%s₦%s.%02d", sign, group(naira), kobo)
}

// group inserts thousands separators into a non-negative integer.
func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
