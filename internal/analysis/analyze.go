package analysis

import (
	"gastos/internal/core"
)

// Report bundles every aggregate produced for one dataset.
type Report struct {
	Stats      Stats
	Categories []CategoryTotal
	Daily      []DailyTotal
	Top        TopExpenses
}

// Analyze runs the aggregator and the ranker. An empty dataset returns an
// empty report together with core.ErrEmptyDataset.
func Analyze(ds core.Dataset, k int) (Report, error) {
	stats := Summarize(ds)
	if stats.Empty {
		return Report{
			Stats:      stats,
			Categories: []CategoryTotal{},
			Daily:      []DailyTotal{},
			Top:        TopK(ds, k, stats.Sum),
		}, core.ErrEmptyDataset
	}
	return Report{
		Stats:      stats,
		Categories: ByCategory(ds, stats.Sum),
		Daily:      ByDay(ds),
		Top:        TopK(ds, k, stats.Sum),
	}, nil
}
