// Package payment holds the card validation helpers used by the checkout
// flow. Card capture itself happens on the external card network; these
// helpers only reject obviously invalid input before it gets that far.
package payment

import (
	"strings"
	"time"
)

// CardType is the detected card brand.
type CardType string

const (
	CardTypeVisa       CardType = "visa"
	CardTypeMastercard CardType = "mastercard"
	CardTypeAmex       CardType = "amex"
	CardTypeDiscover   CardType = "discover"
	CardTypeUnknown    CardType = "unknown"
)

// normalizeCardNumber strips spaces and dashes. Returns "" when any other
// non-digit character is present.
func normalizeCardNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
			// separators are fine
		default:
			return ""
		}
	}
	return b.String()
}

// DetectCardType identifies the card brand from its leading digits.
func DetectCardType(number string) CardType {
	n := normalizeCardNumber(number)
	switch {
	case n == "":
		return CardTypeUnknown
	case strings.HasPrefix(n, "4"):
		return CardTypeVisa
	case strings.HasPrefix(n, "34") || strings.HasPrefix(n, "37"):
		return CardTypeAmex
	case strings.HasPrefix(n, "6011") || strings.HasPrefix(n, "65"):
		return CardTypeDiscover
	case len(n) >= 2 && n[0] == '5' && n[1] >= '1' && n[1] <= '5':
		return CardTypeMastercard
	case len(n) >= 4 && in2SeriesRange(n[:4]):
		return CardTypeMastercard
	default:
		return CardTypeUnknown
	}
}

// in2SeriesRange reports whether a four-digit prefix falls in the 2221-2720
// mastercard range.
func in2SeriesRange(prefix string) bool {
	p := 0
	for _, r := range prefix {
		p = p*10 + int(r-'0')
	}
	return p >= 2221 && p <= 2720
}

// ValidateCardNumber checks length bounds and the Luhn checksum.
func ValidateCardNumber(number string) bool {
	n := normalizeCardNumber(number)
	if len(n) < 13 || len(n) > 19 {
		return false
	}
	return luhnValid(n)
}

// luhnValid runs the Luhn mod-10 checksum over a digits-only string.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateExpiry checks that the expiry month/year is not in the past at
// month granularity: a card expiring this month is still valid.
func ValidateExpiry(month, year int, now time.Time) bool {
	if month < 1 || month > 12 {
		return false
	}
	// Two-digit years are normalized into the 2000s.
	if year < 100 {
		year += 2000
	}
	if year < now.Year() {
		return false
	}
	if year == now.Year() && time.Month(month) < now.Month() {
		return false
	}
	return true
}

// ValidateCVV checks the security code length for the card brand: 4 digits
// for amex, 3 for everything else.
func ValidateCVV(cvv string, cardType CardType) bool {
	want := 3
	if cardType == CardTypeAmex {
		want = 4
	}
	if len(cvv) != want {
		return false
	}
	for _, r := range cvv {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
