// Package core provides the ledger domain types and the locale conversions
// used to turn raw cells into typed values.
//
// This file contains the amount conversion for the ledger's currency format.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyPrefix is the currency symbol that precedes ledger amounts.
const DefaultCurrencyPrefix = "S/"

// ParseAmount converts a currency-formatted cell into a decimal amount.
//
// The currency prefix and every whitespace rune (spaces used as thousands
// separators included) are removed first. What remains must match
//
//	[+-]? digits ( [,.] digits* )?
//	[+-]? [,.] digits
//
// The decimal comma is normalized to a period before conversion. Exponents,
// repeated separators and dotted thousands ("1.234,50") are rejected.
//
// Examples:
//
//	ParseAmount("S/ 123,45", "S/")   -> 123.45
//	ParseAmount("S/ 1 234,50", "S/") -> 1234.5
//	ParseAmount("-12,00", "S/")      -> -12
func ParseAmount(raw, prefix string) (decimal.Decimal, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		s = strings.TrimPrefix(s, prefix)
	}
	if sign == "" && (strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+")) {
		sign, s = s[:1], s[1:]
	}
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if fracPart == "" {
		fracPart = "0"
	}

	d, err := decimal.NewFromString(sign + intPart + "." + fracPart)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	return d, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Round2 rounds to two decimal places, half to even, the way the ledger
// reports have always been rounded.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}
