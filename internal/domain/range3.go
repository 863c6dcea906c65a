package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Range3 is a (low, base, high) estimate triple used for every financial
// delta. The constructor sorts its inputs, so a constructed Range3 always
// satisfies Low <= Base <= High regardless of argument order.
type Range3 struct {
	Low  decimal.Decimal `json:"low"`
	Base decimal.Decimal `json:"base"`
	High decimal.Decimal `json:"high"`
}

// NewRange3 builds a normalized range from three values in any order.
func NewRange3(a, b, c decimal.Decimal) Range3 {
	vs := []decimal.Decimal{a, b, c}
	sort.Slice(vs, func(i, j int) bool { return vs[i].LessThan(vs[j]) })
	return Range3{Low: vs[0], Base: vs[1], High: vs[2]}
}

// ZeroRange3 returns the zero-increment range {0, 0, 0}.
func ZeroRange3() Range3 {
	return Range3{Low: decimal.Zero, Base: decimal.Zero, High: decimal.Zero}
}

// Add returns the component-wise sum, renormalized.
func (r Range3) Add(o Range3) Range3 {
	return NewRange3(r.Low.Add(o.Low), r.Base.Add(o.Base), r.High.Add(o.High))
}

// Sub returns the component-wise difference, renormalized.
func (r Range3) Sub(o Range3) Range3 {
	return NewRange3(r.Low.Sub(o.Low), r.Base.Sub(o.Base), r.High.Sub(o.High))
}

// Neg returns the component-wise negation, renormalized.
func (r Range3) Neg() Range3 {
	return NewRange3(r.Low.Neg(), r.Base.Neg(), r.High.Neg())
}

// FloorAt clamps every component so it never falls below floor.
func (r Range3) FloorAt(floor decimal.Decimal) Range3 {
	return NewRange3(
		decimal.Max(r.Low, floor),
		decimal.Max(r.Base, floor),
		decimal.Max(r.High, floor),
	)
}

// IsZero reports whether all three components are zero.
func (r Range3) IsZero() bool {
	return r.Low.IsZero() && r.Base.IsZero() && r.High.IsZero()
}

// Equal reports component-wise equality.
func (r Range3) Equal(o Range3) bool {
	return r.Low.Equal(o.Low) && r.Base.Equal(o.Base) && r.High.Equal(o.High)
}

func (r Range3) String() string {
	return fmt.Sprintf("[%s, %s, %s]", r.Low.StringFixed(2), r.Base.StringFixed(2), r.High.StringFixed(2))
}
