package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// DefaultTopK is the number of expenses ranked when none is configured.
const DefaultTopK = 5

// TopExpenses is the ranked selection and its weight in the ledger.
type TopExpenses struct {
	Items []core.Expense
	Sum   decimal.Decimal
	// Share is the percentage of the grand total covered by Items.
	Share decimal.Decimal
}

// TopK returns the k largest expenses by amount, descending. Equal amounts
// keep dataset order, so the last slot goes to whichever tied record appears
// first. Fewer than k records returns them all; k <= 0 returns none.
func TopK(ds core.Dataset, k int, grandTotal decimal.Decimal) TopExpenses {
	top := TopExpenses{Items: []core.Expense{}, Sum: decimal.Zero, Share: decimal.Zero}
	if k <= 0 || ds.Empty() {
		return top
	}

	ranked := ds.Records()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if k < len(ranked) {
		ranked = ranked[:k]
	}

	top.Items = ranked
	for _, e := range ranked {
		top.Sum = top.Sum.Add(e.Amount)
	}
	top.Share = percentOf(top.Sum, grandTotal)
	return top
}
