// Package core provides money parsing and handling utilities.
//
// Amounts are shopspring decimals. Two decimal places is the granularity used
// for equality and for every persisted form.
package core

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// decimalPattern admits plain positional notation only. Exponent forms such as
// 1e400 are rejected so a single entry cannot expand into an enormous value.
var decimalPattern = regexp.MustCompile(`^-?[0-9]{1,15}(\.[0-9]{1,8})?$`)

// ParseDecimal parses a signed plain decimal with a dot or comma separator.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	// Normalize decimal comma to dot
	if !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	if !decimalPattern.MatchString(s) {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseAmount converts user or file input to a non-negative decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Returns ErrInvalidAmount for empty input, non-numeric text, NaN/Inf
// spellings, exponent notation and negative values.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,5")  -> 12.5, nil
//	ParseAmount("-1")    -> 0, ErrInvalidAmount
//	ParseAmount("1e400") -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func ValidateAmount(d decimal.Decimal) error {
	if d.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// FormatAmount renders an amount with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
