package recorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNoData is returned when reading back an appended row yields nothing.
var ErrNoData = errors.New("no data found")

const (
	// column B: the cells one and five columns to its right
	totalFormula = `=INDIRECT("R[0]C[1]", FALSE)+INDIRECT("R[0]C[5]", FALSE)`
	// column C: sum of columns D through F
	australianSuperFormula = `=SUM(INDIRECT("R[0]C[1]", FALSE):INDIRECT("R[0]C[3]", FALSE))`
)

// RowStore is the spreadsheet access the recorder needs.
type RowStore interface {
	AppendRows(ctx context.Context, spreadsheetID, range_ string, rows [][]interface{}) (string, error)
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)
}

// Result is the appended row as the spreadsheet computed it.
type Result struct {
	Date            string `json:"date"`
	Total           string `json:"total"`
	AustralianSuper string `json:"australianSuper"`
	Transaction     string `json:"transaction"`
	Shares          string `json:"shares"`
	HighGrowth      string `json:"highGrowth"`
}

type Recorder struct {
	Store                 RowStore
	SpreadsheetID         string
	ReadbackSpreadsheetID string
	SheetName             string
	Now                   func() time.Time
}

// FormatDate renders t as YYYY-M-D without zero padding.
func FormatDate(t time.Time) string {
	return t.Format("2006-1-2")
}

// BuildRow lays out one sheet row. The two formula cells are evaluated by the
// sheet and depend on this column order.
func BuildRow(date, transaction, shares, highGrowth string) []interface{} {
	return []interface{}{
		date,
		totalFormula,
		australianSuperFormula,
		transaction,
		shares,
		highGrowth,
	}
}

// Record appends the balances as a new row and reads that row back.
func (r *Recorder) Record(ctx context.Context, transaction, shares, highGrowth string) (*Result, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	row := BuildRow(FormatDate(now()), transaction, shares, highGrowth)

	log.Debug().
		Str("spreadsheet_id", r.SpreadsheetID).
		Str("sheet", r.SheetName).
		Interface("row", row).
		Msg("Appending row")

	updatedRange, err := r.Store.AppendRows(ctx, r.SpreadsheetID, r.SheetName, [][]interface{}{row})
	if err != nil {
		return nil, err
	}

	readbackID := r.ReadbackSpreadsheetID
	if readbackID == "" {
		readbackID = r.SpreadsheetID
	}

	rows, err := r.Store.ReadSheet(ctx, readbackID, updatedRange)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reading back %s: %w", updatedRange, ErrNoData)
	}

	result := resultFromRow(rows[0])
	log.Info().
		Str("range", updatedRange).
		Str("date", result.Date).
		Str("total", result.Total).
		Msg("Recorded balances")
	return result, nil
}

func resultFromRow(row []interface{}) *Result {
	cell := func(i int) string {
		if i < len(row) && row[i] != nil {
			return fmt.Sprintf("%v", row[i])
		}
		return ""
	}
	return &Result{
		Date:            cell(0),
		Total:           cell(1),
		AustralianSuper: cell(2),
		Transaction:     cell(3),
		Shares:          cell(4),
		HighGrowth:      cell(5),
	}
}
