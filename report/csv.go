package report

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/rustyeddy/pnl/trade"
)

// CSVHeader is the first row written by WriteCSV.
var CSVHeader = []string{"id", "date", "time", "type", "amount", "signed", "note", "created_at"}

// WriteCSV writes the log in insertion order, one trade per row. Amounts are
// written as exact decimals.
func WriteCSV(w io.Writer, trades []trade.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Date.String(),
			t.Time,
			string(t.Type),
			t.Amount.String(),
			t.Signed().String(),
			t.Note,
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
