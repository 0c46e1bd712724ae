package trade

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rustyeddy/pnl/calendar"
	"github.com/shopspring/decimal"
)

// record is the persisted shape of a Trade. Amount is written as a bare JSON
// number holding the exact decimal text.
type record struct {
	ID        string        `json:"id"`
	Amount    json.Number   `json:"amount"`
	Date      calendar.Date `json:"date"`
	Time      string        `json:"time"`
	Note      string        `json:"note,omitempty"`
	Type      Type          `json:"type"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (t Trade) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		ID:        t.ID,
		Amount:    json.Number(t.Amount.String()),
		Date:      t.Date,
		Time:      t.Time,
		Note:      t.Note,
		Type:      t.Type,
		CreatedAt: t.CreatedAt,
	})
}

func (t *Trade) UnmarshalJSON(b []byte) error {
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return fmt.Errorf("trade %s amount: %w", r.ID, err)
	}
	*t = Trade{
		ID:        r.ID,
		Amount:    amount,
		Date:      r.Date,
		Time:      r.Time,
		Note:      r.Note,
		Type:      r.Type,
		CreatedAt: r.CreatedAt,
	}
	return nil
}

// Encode serializes a trade log as a JSON array. A nil log encodes as [].
func Encode(trades []Trade) ([]byte, error) {
	if trades == nil {
		trades = []Trade{}
	}
	return json.Marshal(trades)
}

// Decode parses a JSON array written by Encode and checks every record
// against the log invariants: non-empty unique ids, positive amounts, a
// known type and a date.
func Decode(b []byte) ([]Trade, error) {
	var trades []Trade
	if err := json.Unmarshal(b, &trades); err != nil {
		return nil, fmt.Errorf("decode trades: %w", err)
	}
	if trades == nil {
		return nil, fmt.Errorf("decode trades: not an array")
	}

	seen := make(map[string]bool, len(trades))
	for i, t := range trades {
		switch {
		case t.ID == "":
			return nil, fmt.Errorf("trade %d: missing id", i)
		case seen[t.ID]:
			return nil, fmt.Errorf("trade %d: duplicate id %s", i, t.ID)
		case !t.Amount.IsPositive():
			return nil, fmt.Errorf("trade %s: amount %s is not positive", t.ID, t.Amount)
		case !t.Type.Valid():
			return nil, fmt.Errorf("trade %s: unknown type %q", t.ID, t.Type)
		case t.Date.IsZero():
			return nil, fmt.Errorf("trade %s: missing date", t.ID)
		}
		seen[t.ID] = true
	}
	return trades, nil
}
