package ledger

import (
	"errors"

	"gastos/internal/core"
)

// RowFailure records a dropped row. Index is zero-based in source order.
type RowFailure struct {
	Index int
	Field Field
	Value string
	Err   error
}

// NormalizeReport summarizes a Normalize run.
type NormalizeReport struct {
	Total          int
	Valid          int
	Dropped        int
	DroppedByField map[Field]int
	Failures       []RowFailure
}

// Empty reports whether no row survived normalization.
func (r NormalizeReport) Empty() bool {
	return r.Valid == 0
}

// Normalize parses every row, keeping successes in source order. Failures
// never abort the run; they are returned in the report.
func (p *Parser) Normalize(rows []core.RawRow) (core.Dataset, NormalizeReport) {
	report := NormalizeReport{
		Total:          len(rows),
		DroppedByField: map[Field]int{},
	}
	records := make([]core.Expense, 0, len(rows))

	for i, row := range rows {
		e, err := p.ParseRow(row)
		if err != nil {
			failure := RowFailure{Index: i, Err: err}
			var fe *FieldError
			if errors.As(err, &fe) {
				failure.Field = fe.Field
				failure.Value = fe.Value
				failure.Err = fe.Err
			}
			report.Failures = append(report.Failures, failure)
			report.DroppedByField[failure.Field]++
			report.Dropped++
			continue
		}
		records = append(records, e)
	}

	report.Valid = len(records)
	return core.NewDataset(records), report
}
