// Package money provides currency arithmetic on top of shopspring/decimal.
// Operands and results are rounded to a fixed number of fractional digits
// (cents by default) so that sums never accumulate binary floating point drift.
package money

import (
	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of fractional digits kept for currency values.
const DefaultPrecision int32 = 2

// Inf is the positive infinity sentinel returned by Divide when the divisor is zero.
// It lies outside the float64 range, so Inf.InexactFloat64() reports +Inf.
var Inf = decimal.New(1, 309)

// IsInf reports whether d is the Inf sentinel.
func IsInf(d decimal.Decimal) bool {
	return d.Equal(Inf)
}

// Calculator performs currency arithmetic at a fixed precision.
// The zero value is not usable; construct it with New.
type Calculator struct {
	precision int32
}

// New returns a Calculator rounding to precision fractional digits.
// A negative precision falls back to DefaultPrecision.
func New(precision int32) Calculator {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return Calculator{precision: precision}
}

// Precision returns the number of fractional digits kept.
func (c Calculator) Precision() int32 {
	return c.precision
}

// Round rounds d half away from zero to the calculator precision.
func (c Calculator) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(c.precision)
}

// Add returns x + y.
func (c Calculator) Add(x, y decimal.Decimal) decimal.Decimal {
	return c.Round(x).Add(c.Round(y))
}

// Sub returns x - y.
func (c Calculator) Sub(x, y decimal.Decimal) decimal.Decimal {
	return c.Round(x).Sub(c.Round(y))
}

// Multiply returns x * factor. The factor is not rounded, so rates like 0.075 keep their precision.
func (c Calculator) Multiply(x, factor decimal.Decimal) decimal.Decimal {
	return c.Round(c.Round(x).Mul(factor))
}

// Divide returns x / divisor, or Inf when divisor is zero.
func (c Calculator) Divide(x, divisor decimal.Decimal) decimal.Decimal {
	if divisor.IsZero() {
		return Inf
	}
	return c.Round(x).DivRound(divisor, c.precision)
}
