package report

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats decimal amounts in one display currency. Amounts keep full
// precision in the core; rounding to the currency's minor unit happens here
// and nowhere else.
type Money struct {
	cur money.Currency
}

// NewMoney returns a formatter for an ISO 4217 currency code.
func NewMoney(code string) (Money, error) {
	cur := money.GetCurrency(code)
	if cur == nil {
		return Money{}, fmt.Errorf("unknown currency %q", code)
	}
	return Money{cur: *cur}, nil
}

// Code returns the currency code.
func (m Money) Code() string { return m.cur.Code }

// Format renders d with the currency's symbol and minor units: $1,234.50.
func (m Money) Format(d decimal.Decimal) string {
	return m.format(d, m.cur.Fraction)
}

// Signed is Format with an explicit + for gains: +$60.00, -$40.00, $0.00.
func (m Money) Signed(d decimal.Decimal) string {
	if d.IsPositive() && !d.Round(int32(m.cur.Fraction)).IsZero() {
		return "+" + m.Format(d)
	}
	return m.Format(d)
}

// Whole renders the magnitude of d rounded to whole units, as the calendar
// cells do: $60. Exactly zero renders as the empty string.
func (m Money) Whole(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return m.format(d.Abs(), 0)
}

// format renders d with fraction minor digits. Amounts whose minor units do
// not fit an int64 are laid out here with the currency's separators and
// template, the same way go-money would.
func (m Money) format(d decimal.Decimal, fraction int) string {
	units := d.Shift(int32(fraction)).Round(0)
	if units.BigInt().IsInt64() {
		f := money.NewFormatter(fraction, m.cur.Decimal, m.cur.Thousand, m.cur.Grapheme, m.cur.Template)
		return f.Format(units.IntPart())
	}

	digits := units.Abs().BigInt().String()
	if len(digits) <= fraction {
		digits = strings.Repeat("0", fraction-len(digits)+1) + digits
	}
	whole, frac := digits[:len(digits)-fraction], digits[len(digits)-fraction:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(m.cur.Thousand)
		}
		b.WriteRune(r)
	}
	if fraction > 0 {
		b.WriteString(m.cur.Decimal)
		b.WriteString(frac)
	}

	s := strings.Replace(m.cur.Template, "1", b.String(), 1)
	s = strings.Replace(s, "$", m.cur.Grapheme, 1)
	if units.IsNegative() {
		s = "-" + s
	}
	return s
}
