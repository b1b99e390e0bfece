// Package phone validates and normalizes the client phone numbers reminders are sent to.
package phone

import (
	"strings"

	customError "github.com/segyhp/reminder-engine/pkg/errors"
)

const (
	MinDigits = 10
	MaxDigits = 14

	// DefaultCountryCode is prefixed to national numbers (area code + subscriber).
	DefaultCountryCode = "55"

	// nationalMaxDigits is the longest number that still lacks a country code.
	nationalMaxDigits = 11
)

// Digits strips everything but ASCII digits.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate returns the digit string of raw, or INVALID_PHONE when it does not have 10-14 digits.
func Validate(raw string) (string, error) {
	digits := Digits(raw)
	if len(digits) < MinDigits || len(digits) > MaxDigits {
		return "", customError.WrapInvalidPhone(raw)
	}
	return digits, nil
}

// Normalize returns the number in +<country><number> form, prefixing
// countryCode when the number has 11 digits or fewer.
func Normalize(raw, countryCode string) (string, error) {
	digits, err := Validate(raw)
	if err != nil {
		return "", err
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	if len(digits) <= nationalMaxDigits {
		return "+" + countryCode + digits, nil
	}
	return "+" + digits, nil
}

// Format renders the number for display, e.g. (44)99838-5898 or +55(44)99838-5898.
func Format(raw string) string {
	d := Digits(raw)
	switch len(d) {
	case 10:
		return "(" + d[:2] + ")" + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ")" + d[2:7] + "-" + d[7:]
	case 13:
		return "+" + d[:2] + "(" + d[2:4] + ")" + d[4:9] + "-" + d[9:]
	case 14:
		return "+" + d[:3] + "(" + d[3:5] + ")" + d[5:10] + "-" + d[10:]
	default:
		return d
	}
}
