// Package uiutil formats inventory values for display.
package uiutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CurrencySymbol prefixes every displayed price.
const CurrencySymbol = "₹"

const stampLayout = "Jan 2, 2006 3:04 PM"

// Price renders p in rupees, dropping ".00" on whole amounts: ₹25, ₹12.50.
func Price(p float64) string {
	return CurrencySymbol + strings.TrimSuffix(strconv.FormatFloat(p, 'f', 2, 64), ".00")
}

// Stock labels a quantity; zero and below read "Out of stock".
func Stock(qty int) string {
	if qty <= 0 {
		return "Out of stock"
	}
	return strconv.Itoa(qty) + " in stock"
}

// Ago describes how long before now t was. Anything under a minute, or in
// the future, is "just now"; a day or more falls back to a local timestamp.
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour") + " ago"
	default:
		return Stamp(t)
	}
}

// Stamp renders t in local time, or "" for the zero time.
func Stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(stampLayout)
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
