// File: /utils/validators.go
package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	DateLayout = "2006-01-02"
	MaxVINLen  = 17
	MinCarYear = 1900
)

// IsValidPassword requires six characters and at least two of upper case,
// lower case, digits and symbols.
func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	count := 0
	for _, ok := range []bool{hasUpper, hasLower, hasNumber, hasSpecial} {
		if ok {
			count++
		}
	}
	return count >= 2
}

// IsValidCarYear accepts model years from 1900 up to next year.
func IsValidCarYear(year int, now time.Time) bool {
	return year >= MinCarYear && year <= now.Year()+1
}

func IsValidVIN(vin string) bool {
	return len(strings.TrimSpace(vin)) <= MaxVINLen
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseOptionalDate parses value unless it is empty.
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
