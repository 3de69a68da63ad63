package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// DailyTotal is the summed amount of one calendar day.
type DailyTotal struct {
	Date  core.Date
	Total decimal.Decimal
}

// ByDay sums amounts per date, in chronological order.
func ByDay(ds core.Dataset) []DailyTotal {
	sums := map[core.Date]decimal.Decimal{}
	for i := 0; i < ds.Len(); i++ {
		e := ds.At(i)
		if cur, ok := sums[e.Date]; ok {
			sums[e.Date] = cur.Add(e.Amount)
		} else {
			sums[e.Date] = e.Amount
		}
	}

	out := make([]DailyTotal, 0, len(sums))
	for d, total := range sums {
		out = append(out, DailyTotal{Date: d, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out
}
