// Package analysis aggregates a normalized ledger: global statistics,
// per-category and per-day rollups, and the ranking of the largest expenses.
//
// Every function reads the dataset and returns new values; nothing is
// mutated in place.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// Stats holds the global statistics of a dataset. When Empty is true every
// other field is the zero value.
type Stats struct {
	Empty         bool
	Count         int
	Sum           decimal.Decimal
	Mean          decimal.Decimal
	Median        decimal.Decimal
	Min           decimal.Decimal
	Max           decimal.Decimal
	FirstDate     core.Date
	LastDate      core.Date
	DaySpan       int
	AveragePerDay decimal.Decimal
}

// Summarize computes the global statistics. DaySpan counts both ends, so a
// dataset whose records share one date spans one day.
func Summarize(ds core.Dataset) Stats {
	if ds.Empty() {
		return Stats{Empty: true}
	}

	first := ds.At(0)
	st := Stats{
		Count:     ds.Len(),
		Sum:       decimal.Zero,
		Min:       first.Amount,
		Max:       first.Amount,
		FirstDate: first.Date,
		LastDate:  first.Date,
	}
	amounts := make([]decimal.Decimal, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		e := ds.At(i)
		st.Sum = st.Sum.Add(e.Amount)
		if e.Amount.LessThan(st.Min) {
			st.Min = e.Amount
		}
		if e.Amount.GreaterThan(st.Max) {
			st.Max = e.Amount
		}
		if e.Date.Before(st.FirstDate.Time) {
			st.FirstDate = e.Date
		}
		if e.Date.After(st.LastDate.Time) {
			st.LastDate = e.Date
		}
		amounts = append(amounts, e.Amount)
	}

	count := decimal.NewFromInt(int64(st.Count))
	st.Mean = st.Sum.Div(count)
	st.Median = median(amounts)
	st.DaySpan = st.FirstDate.DaysUntil(st.LastDate) + 1
	st.AveragePerDay = st.Sum.Div(decimal.NewFromInt(int64(st.DaySpan)))
	return st
}

func median(amounts []decimal.Decimal) decimal.Decimal {
	sorted := append([]decimal.Decimal(nil), amounts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// percentOf returns round2(100 * part / whole), or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return core.Round2(part.Mul(decimal.NewFromInt(100)).Div(whole))
}
