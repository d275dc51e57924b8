package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Fraction is a ratio in [0, 1] used for commission percentages.
// The engine works exclusively with fractions; conversion from the
// user-facing 0-100 representation happens once, at the API boundary.
type Fraction struct {
	value decimal.Decimal
}

// NewFraction creates a Fraction, rejecting values outside [0, 1]
func NewFraction(value decimal.Decimal) (Fraction, error) {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(1)) {
		return Fraction{}, fmt.Errorf("fraction must be between 0 and 1, got %s", value)
	}
	return Fraction{value: value}, nil
}

// NewFractionFromPercent converts a 0-100 percentage into a Fraction
func NewFractionFromPercent(percent decimal.Decimal) (Fraction, error) {
	return NewFraction(percent.Div(hundred))
}

// ZeroFraction returns the zero fraction
func ZeroFraction() Fraction {
	return Fraction{value: decimal.Zero}
}

// MustFraction creates a Fraction from a value already known to be valid,
// such as one read back from storage. Panics on out-of-range input.
func MustFraction(value decimal.Decimal) Fraction {
	f, err := NewFraction(value)
	if err != nil {
		panic(err)
	}
	return f
}

// Value returns the underlying decimal in [0, 1]
func (f Fraction) Value() decimal.Decimal {
	return f.value
}

// Percent returns the user-facing 0-100 representation
func (f Fraction) Percent() decimal.Decimal {
	return f.value.Mul(hundred)
}

// ApplyTo multiplies an amount by the fraction
func (f Fraction) ApplyTo(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(f.value)
}

// IsZero returns true if the fraction is zero
func (f Fraction) IsZero() bool {
	return f.value.IsZero()
}

// String returns the fraction as a decimal string
func (f Fraction) String() string {
	return f.value.String()
}

// MarshalJSON implements json.Marshaler
func (f Fraction) MarshalJSON() ([]byte, error) {
	return f.value.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler
func (f *Fraction) UnmarshalJSON(data []byte) error {
	var v decimal.Decimal
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := NewFraction(v)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
