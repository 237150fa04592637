package domain

import (
	"errors"
	"strings"
)

// Phone normalization errors. ErrNoPhone means the caller never had a number
// to normalize; the other two mean a number was present but unusable.
var (
	ErrNoPhone       = errors.New("no phone number provided")
	ErrPhoneTooShort = errors.New("phone number too short")
	ErrPhoneFormat   = errors.New("unrecognized phone number format")
)

const countryDialingPrefix = "91"

// NormalizePhone maps a raw phone string onto the canonical 12-digit
// "91"-prefixed dialing format used by the WhatsApp API. Rules are applied in
// order, first match wins:
//
//	"9876543210"    -> "919876543210"  (bare 10-digit number)
//	"09876543210"   -> "919876543210"  (leading trunk zero replaced)
//	"919876543210"  -> unchanged       (already canonical)
//	"+91 98765 43210" -> "919876543210" (whitespace and "+" stripped)
//
// Anything shorter than 10 digits after stripping fails; any other length
// fails as unrecognized.
func NormalizePhone(raw string) (string, error) {
	if raw == "" {
		return "", ErrNoPhone
	}

	s := strings.Join(strings.Fields(raw), "")
	s = strings.TrimPrefix(s, "+")

	if len(s) < 10 {
		return "", ErrPhoneTooShort
	}

	switch {
	case len(s) == 12 && strings.HasPrefix(s, countryDialingPrefix):
		return s, nil
	case len(s) == 10 && !strings.HasPrefix(s, countryDialingPrefix):
		return countryDialingPrefix + s, nil
	case len(s) == 11 && strings.HasPrefix(s, "0"):
		return countryDialingPrefix + s[1:], nil
	case len(s) == 12:
		// Assume a foreign-prefixed but otherwise complete number.
		return s, nil
	default:
		return "", ErrPhoneFormat
	}
}
