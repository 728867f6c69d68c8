// Package core holds the ledger domain model: money, dates, accounts,
// transactions and the snapshot aggregate, plus the validation rules that
// every mutation path shares.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in kuruş (cents). Signed: expense rows are negative.
// Integer cents keep the arithmetic exact; floats only appear at the
// formatting edge.
type Money struct {
	Cents int64
}

// ParseDecimalToCents converts a user-entered decimal magnitude to cents.
// Both dot (12.34) and comma (12,34) separators are accepted; a third
// fractional digit rounds half-up. Zero, negative and malformed inputs are
// rejected with ErrValidation.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	cents, err := decimalCents(s)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return cents, nil
}

// decimalCents parses a non-negative dot-decimal into cents, rounding a
// third fractional digit half-up.
func decimalCents(s string) (int64, error) {
	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || iv > (1<<63-1)/100 {
		return 0, fmt.Errorf("%w: amount out of range %q", ErrValidation, s)
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		frac += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		frac++
	}
	return iv*100 + frac, nil
}

// Abs returns the magnitude.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Decimal renders the amount with exactly two decimal places and a dot
// separator, e.g. -300.00. This is the CSV wire format.
func (m Money) Decimal() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Lira returns the amount as a float64 for display formatting only.
func (m Money) Lira() float64 {
	return float64(m.Cents) / 100.0
}

// MarshalJSON renders the amount as a lira number (1000, -300.5), the shape
// snapshots have always carried. Trailing zero decimals are dropped so a
// round trip reproduces the stored bytes.
func (m Money) MarshalJSON() ([]byte, error) {
	cents := m.Cents
	var b []byte
	if cents < 0 {
		b = append(b, '-')
		cents = -cents
	}
	b = strconv.AppendInt(b, cents/100, 10)
	switch {
	case cents%100 == 0:
	case cents%10 == 0:
		b = append(b, '.', byte('0'+(cents/10)%10))
	default:
		b = append(b, '.', byte('0'+(cents/10)%10), byte('0'+cents%10))
	}
	return b, nil
}

// UnmarshalJSON reads a lira number, integer or fractional, into cents.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return fmt.Errorf("%w: invalid money value %q", ErrValidation, data)
	}
	cents, err := decimalCents(s)
	if err != nil {
		return fmt.Errorf("%w: invalid money value %q", ErrValidation, data)
	}
	if neg {
		cents = -cents
	}
	m.Cents = cents
	return nil
}
