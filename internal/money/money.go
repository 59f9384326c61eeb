// Package money provides a fixed-point currency amount with exactly two
// fractional digits. All arithmetic happens on exact decimals so repeated
// aggregation never drifts the way binary floats do.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is an immutable fixed-point amount with cent precision.
// The zero value is 0.00.
type Amount struct {
	dec decimal.Decimal
}

// Zero is the 0.00 amount.
var Zero = Amount{}

// FromCents builds an Amount from an integer number of cents.
func FromCents(cents int64) Amount {
	return Amount{dec: decimal.New(cents, -2)}
}

// Parse converts a decimal string (e.g. "12.50") into an Amount.
// More than two fractional digits is an error, not a rounding.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.Exponent() < -2 {
		return Amount{}, fmt.Errorf("invalid amount %q: more than two fractional digits", s)
	}
	return Amount{dec: d}, nil
}

// MustParse is Parse for literals in tests and constants; panics on error.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns a + other.
func (a Amount) Add(other Amount) Amount {
	return Amount{dec: a.dec.Add(other.dec)}
}

// Sub returns a - other.
func (a Amount) Sub(other Amount) Amount {
	return Amount{dec: a.dec.Sub(other.dec)}
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return Amount{dec: a.dec.Neg()}
}

// Abs returns the absolute value of a.
func (a Amount) Abs() Amount {
	return Amount{dec: a.dec.Abs()}
}

// Min returns the smaller of a and other.
func (a Amount) Min(other Amount) Amount {
	if a.dec.LessThan(other.dec) {
		return a
	}
	return other
}

// Cents returns the amount as an integer number of cents.
func (a Amount) Cents() int64 {
	return a.dec.Mul(decimal.New(100, 0)).IntPart()
}

// Cmp compares a and other: -1 if a < other, 0 if equal, 1 if a > other.
func (a Amount) Cmp(other Amount) int {
	return a.dec.Cmp(other.dec)
}

// Equal reports whether a and other represent the same value.
func (a Amount) Equal(other Amount) bool {
	return a.dec.Equal(other.dec)
}

// IsZero reports whether a is 0.00.
func (a Amount) IsZero() bool {
	return a.dec.IsZero()
}

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool {
	return a.dec.IsPositive()
}

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool {
	return a.dec.IsNegative()
}

// String renders the amount with exactly two fractional digits.
// This is the canonical form for storage and wire payloads.
func (a Amount) String() string {
	return a.dec.StringFixed(2)
}

// MarshalJSON renders the amount as a quoted 2dp decimal string so binary
// float representations never reach the wire.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts both a quoted decimal string and a bare JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
