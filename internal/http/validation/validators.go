// Package validation checks submitted HTML form values before they reach the
// Shop API. Messages are written for the visitor, not the log.
package validation

import (
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule checks one raw form value and returns a message, or "" when it passes.
type Rule func(v string) string

// Text requires a non-blank value of at most maxLen runes.
func Text(label string, maxLen int) Rule {
	return func(v string) string {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
			return label + " is required."
		case utf8.RuneCountInString(v) > maxLen:
			return fmt.Sprintf("%s cannot exceed %d characters.", label, maxLen)
		}
		return ""
	}
}

// Email accepts a bare address ("jane@example.com"), not "Jane <jane@...>".
func Email(label string) Rule {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return label + " is required."
		}
		if addr, err := mail.ParseAddress(v); err != nil || addr.Address != v {
			return "Enter a valid email address."
		}
		return ""
	}
}

// WholeNumber accepts integers in [lo, hi].
func WholeNumber(label string, lo, hi int) Rule {
	return func(v string) string {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return label + " must be a whole number."
		}
		if n < lo || n > hi {
			return fmt.Sprintf("%s must be between %d and %d.", label, lo, hi)
		}
		return ""
	}
}

// Amount accepts a finite number >= 0, such as a price.
func Amount(label string) Rule {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return label + " is required."
		}
		f, err := strconv.ParseFloat(v, 64)
		switch {
		case err != nil, math.IsNaN(f), math.IsInf(f, 0):
			return label + " must be a number."
		case f < 0:
			return label + " must be non-negative."
		}
		return ""
	}
}

// Errors maps form field names to the first message raised for them.
type Errors map[string]string

// Check runs rules against value in order and records the first failure under
// field. A nil Errors is allocated on first failure.
func (e Errors) Check(field, value string, rules ...Rule) Errors {
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			if e == nil {
				e = Errors{}
			}
			e[field] = msg
			break
		}
	}
	return e
}
