// Package validator normalises guest contact details before they are stored
// or searched.
package validator

import (
	"errors"
	"strings"
)

var (
	ErrEmptyPhone    = errors.New("phone number cannot be empty")
	ErrInvalidFormat = errors.New("phone number can only contain digits and separators")
	ErrInvalidLength = errors.New("phone number must have 10 digits, or 8 to 15 digits after a country code")
	ErrInvalidPrefix = errors.New("mobile number must start with 6, 7, 8, or 9")
)

// domesticCode is the country code of numbers stored without a prefix
const domesticCode = "91"

// maxForeignDigits is the E.164 limit on country code plus number
const maxForeignDigits = 15

// MaxPhoneLength is the longest value Validate returns: "+" and 15 digits
const MaxPhoneLength = maxForeignDigits + 1

var separators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// PhoneValidator checks guest phone numbers. Domestic mobiles are stored as
// the ten digit national number, foreign numbers as +<country><number>.
type PhoneValidator struct{}

func NewPhoneValidator() *PhoneValidator {
	return &PhoneValidator{}
}

// Validate accepts 9876543210, 98765-43210, +91 98765 43210, 09876543210
// and foreign numbers such as +44 20 7946 0958.
func (v *PhoneValidator) Validate(phone string) (string, error) {
	compact := separators.Replace(strings.TrimSpace(phone))
	if compact == "" {
		return "", ErrEmptyPhone
	}

	international := strings.HasPrefix(compact, "+")
	digits := strings.TrimPrefix(compact, "+")
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return "", ErrInvalidFormat
	}

	if international && !strings.HasPrefix(digits, domesticCode) {
		if len(digits) < 8 || len(digits) > maxForeignDigits {
			return "", ErrInvalidLength
		}
		return "+" + digits, nil
	}

	national := nationalNumber(digits)
	if len(national) != 10 {
		return "", ErrInvalidLength
	}
	switch national[0] {
	case '6', '7', '8', '9':
		return national, nil
	}
	return "", ErrInvalidPrefix
}

// Normalize returns the validated number, or the input stripped of
// separators and trunk prefix when it does not validate. Lookups use it so
// landlines stored as typed still match.
func (v *PhoneValidator) Normalize(phone string) string {
	if normalized, err := v.Validate(phone); err == nil {
		return normalized
	}
	return nationalNumber(strings.TrimPrefix(separators.Replace(strings.TrimSpace(phone)), "+"))
}

func nationalNumber(digits string) string {
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, domesticCode):
		return digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return digits[1:]
	}
	return digits
}
