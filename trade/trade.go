// Package trade defines the trade record logged by the P&L tracker and the
// rules a new trade must satisfy before it enters the log.
package trade

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/pnl/calendar"
	"github.com/shopspring/decimal"
)

// TimeFormat is the layout of Trade.Time.
const TimeFormat = "15:04"

// Type tags a trade as a profit or a loss. Amounts are always stored as a
// positive magnitude; the Type carries the sign.
type Type string

const (
	Profit Type = "profit"
	Loss   Type = "loss"
)

// Valid reports whether t is Profit or Loss.
func (t Type) Valid() bool { return t == Profit || t == Loss }

// ParseType accepts profit/loss in any case, plus the + and - shorthands.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "profit", "p", "+":
		return Profit, nil
	case "loss", "l", "-":
		return Loss, nil
	}
	return "", &ValidationError{Field: "type", Reason: fmt.Sprintf("%q is not profit or loss", s)}
}

// Trade is a single recorded profit or loss. Trades are never edited in
// place; the log only grows by append and shrinks by removal.
type Trade struct {
	ID        string
	Amount    decimal.Decimal
	Date      calendar.Date
	Time      string
	Note      string
	Type      Type
	CreatedAt time.Time
}

// Signed returns the trade's contribution to a P&L sum.
func (t Trade) Signed() decimal.Decimal {
	if t.Type == Loss {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Equal compares field by field, amounts by decimal value.
func (t Trade) Equal(u Trade) bool {
	return t.ID == u.ID &&
		t.Amount.Equal(u.Amount) &&
		t.Date == u.Date &&
		t.Time == u.Time &&
		t.Note == u.Note &&
		t.Type == u.Type &&
		t.CreatedAt.Equal(u.CreatedAt)
}

// Input is what a user supplies for a new trade. ID and CreatedAt are
// assigned by the store.
type Input struct {
	Amount decimal.Decimal
	Date   calendar.Date
	Time   string
	Note   string
	Type   Type
}

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("invalid trade")

// ValidationError reports the first field of an Input that was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid trade: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validate checks the Input against the rules of the log.
func (in Input) Validate() error {
	if !in.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if !in.Type.Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("%q is not profit or loss", in.Type)}
	}
	if in.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if _, err := time.Parse(TimeFormat, in.Time); err != nil {
		return &ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not HH:mm", in.Time)}
	}
	return nil
}

// New builds a Trade from a validated Input. Time is normalized to HH:mm and
// a blank note is dropped.
func New(in Input, id string, createdAt time.Time) (Trade, error) {
	if err := in.Validate(); err != nil {
		return Trade{}, err
	}
	clock, _ := time.Parse(TimeFormat, in.Time)
	return Trade{
		ID:        id,
		Amount:    in.Amount,
		Date:      in.Date,
		Time:      clock.Format(TimeFormat),
		Note:      strings.TrimSpace(in.Note),
		Type:      in.Type,
		CreatedAt: createdAt.UTC(),
	}, nil
}

// ParseAmount converts user text into an amount. It rejects blank and
// non-numeric text; NaN and infinities are not numbers to decimal and are
// rejected the same way. Sign is checked later by Validate.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "is required"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return d, nil
}

// AmountFromFloat converts a float amount, rejecting NaN and infinities.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must be finite"}
	}
	return decimal.NewFromFloat(f), nil
}
