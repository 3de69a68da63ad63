package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// CategoryTotal is one row of the per-category rollup. Total and Mean are
// rounded to two decimals; RawTotal keeps full precision.
type CategoryTotal struct {
	Category   string
	Total      decimal.Decimal
	RawTotal   decimal.Decimal
	Count      int
	Mean       decimal.Decimal
	Percentage decimal.Decimal
}

type categoryAcc struct {
	sum   decimal.Decimal
	count int
}

// ByCategory folds the dataset into per-category totals, sorted by rounded
// total descending. Categories with equal totals keep the order in which they
// first appear in the dataset. Percentages are taken against grandTotal.
func ByCategory(ds core.Dataset, grandTotal decimal.Decimal) []CategoryTotal {
	accs := map[string]*categoryAcc{}
	order := make([]string, 0)
	for i := 0; i < ds.Len(); i++ {
		e := ds.At(i)
		acc, ok := accs[e.Category]
		if !ok {
			acc = &categoryAcc{sum: decimal.Zero}
			accs[e.Category] = acc
			order = append(order, e.Category)
		}
		acc.sum = acc.sum.Add(e.Amount)
		acc.count++
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		acc := accs[name]
		total := core.Round2(acc.sum)
		out = append(out, CategoryTotal{
			Category:   name,
			Total:      total,
			RawTotal:   acc.sum,
			Count:      acc.count,
			Mean:       core.Round2(acc.sum.Div(decimal.NewFromInt(int64(acc.count)))),
			Percentage: percentOf(total, grandTotal),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}
