// Package money formats rupee amounts the way listings display them.
// This is part of the platform layer and contains no business logic.
package money

import (
	"strconv"
	"strings"
)

const (
	thousand = 1_000
	lakh     = 1_00_000
	crore    = 1_00_00_000
)

// FormatPrice renders an amount in whole rupees in the compact Indian style:
// "₹1.2 Cr", "₹85 L", "₹5.5 K". Exact multiples drop the decimal.
func FormatPrice(amount int64) string {
	switch {
	case amount >= crore:
		return "₹" + compact(amount, crore) + " Cr"
	case amount >= lakh:
		return "₹" + compact(amount, lakh) + " L"
	case amount >= thousand:
		return "₹" + compact(amount, thousand) + " K"
	default:
		return "₹" + GroupIndian(amount)
	}
}

func compact(amount, unit int64) string {
	if amount%unit == 0 {
		return strconv.FormatInt(amount/unit, 10)
	}
	return strconv.FormatFloat(float64(amount)/float64(unit), 'f', 1, 64)
}

// GroupIndian inserts separators using Indian digit grouping: the last three
// digits, then groups of two (12,34,56,789).
func GroupIndian(amount int64) string {
	negative := amount < 0
	digits := strconv.FormatInt(amount, 10)
	if negative {
		digits = digits[1:]
	}

	if len(digits) <= 3 {
		if negative {
			return "-" + digits
		}
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	out := strings.Join(groups, ",") + "," + tail
	if negative {
		return "-" + out
	}
	return out
}

// FormatRupees renders the full amount with Indian grouping, e.g. "₹69,426".
func FormatRupees(amount int64) string {
	return "₹" + GroupIndian(amount)
}
