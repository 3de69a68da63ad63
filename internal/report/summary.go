package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/ledger"
)

// Summary is the serializable form of a Document. Amounts are fixed-point
// strings with two decimals and dates use the ledger layout.
type Summary struct {
	RunID         string            `json:"run_id"`
	Source        string            `json:"source"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Normalization NormalizationView `json:"normalization"`
	Stats         StatsView         `json:"stats"`
	Categories    []CategoryView    `json:"categories"`
	Daily         []DailyView       `json:"daily"`
	Top           TopView           `json:"top"`
}

type NormalizationView struct {
	Total   int            `json:"total"`
	Valid   int            `json:"valid"`
	Dropped int            `json:"dropped"`
	ByField map[string]int `json:"dropped_by_field,omitempty"`
}

type StatsView struct {
	Count         int    `json:"count"`
	Sum           string `json:"sum"`
	Mean          string `json:"mean"`
	Median        string `json:"median"`
	Min           string `json:"min"`
	Max           string `json:"max"`
	FirstDate     string `json:"first_date,omitempty"`
	LastDate      string `json:"last_date,omitempty"`
	DaySpan       int    `json:"day_span"`
	AveragePerDay string `json:"average_per_day"`
}

type CategoryView struct {
	Category   string `json:"category"`
	Total      string `json:"total"`
	Count      int    `json:"count"`
	Mean       string `json:"mean"`
	Percentage string `json:"percentage"`
}

type DailyView struct {
	Date  string `json:"date"`
	Total string `json:"total"`
}

type ExpenseView struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type TopView struct {
	K     int           `json:"k"`
	Items []ExpenseView `json:"items"`
	Sum   string        `json:"sum"`
	Share string        `json:"share"`
}

// NewSummary flattens doc.
func NewSummary(doc *Document) Summary {
	a := doc.Analysis
	s := Summary{
		RunID:         doc.RunID,
		Source:        doc.Source,
		GeneratedAt:   doc.GeneratedAt,
		Normalization: normalizationView(doc.Normalization),
		Stats: StatsView{
			Count:         a.Stats.Count,
			Sum:           amount(a.Stats.Sum),
			Mean:          amount(a.Stats.Mean),
			Median:        amount(a.Stats.Median),
			Min:           amount(a.Stats.Min),
			Max:           amount(a.Stats.Max),
			DaySpan:       a.Stats.DaySpan,
			AveragePerDay: amount(a.Stats.AveragePerDay),
		},
		Categories: make([]CategoryView, 0, len(a.Categories)),
		Daily:      make([]DailyView, 0, len(a.Daily)),
		Top: TopView{
			K:     doc.TopK,
			Items: make([]ExpenseView, 0, len(a.Top.Items)),
			Sum:   amount(a.Top.Sum),
			Share: amount(a.Top.Share),
		},
	}
	if !a.Stats.Empty {
		s.Stats.FirstDate = a.Stats.FirstDate.String()
		s.Stats.LastDate = a.Stats.LastDate.String()
	}
	for _, c := range a.Categories {
		s.Categories = append(s.Categories, CategoryView{
			Category:   c.Category,
			Total:      amount(c.Total),
			Count:      c.Count,
			Mean:       amount(c.Mean),
			Percentage: amount(c.Percentage),
		})
	}
	for _, d := range a.Daily {
		s.Daily = append(s.Daily, DailyView{Date: d.Date.String(), Total: amount(d.Total)})
	}
	for _, e := range a.Top.Items {
		s.Top.Items = append(s.Top.Items, expenseView(e))
	}
	return s
}

func normalizationView(n ledger.NormalizeReport) NormalizationView {
	v := NormalizationView{Total: n.Total, Valid: n.Valid, Dropped: n.Dropped}
	if len(n.DroppedByField) > 0 {
		v.ByField = make(map[string]int, len(n.DroppedByField))
		for f, c := range n.DroppedByField {
			v.ByField[string(f)] = c
		}
	}
	return v
}

func expenseView(e core.Expense) ExpenseView {
	return ExpenseView{
		Date:        e.Date.String(),
		Category:    e.Category,
		Description: e.Description,
		Amount:      amount(e.Amount),
	}
}

func amount(d decimal.Decimal) string {
	return core.Round2(d).StringFixed(2)
}

// droppedFields returns the fields with dropped rows in name order.
func droppedFields(n ledger.NormalizeReport) []ledger.Field {
	fields := make([]ledger.Field, 0, len(n.DroppedByField))
	for f, c := range n.DroppedByField {
		if c > 0 {
			fields = append(fields, f)
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
