// Package sources defines where ledger rows come from. Implementations live
// in the subpackages; the SQLite ledger store in internal/storage satisfies
// the same port.
package sources

import (
	"context"
	"strings"

	"gastos/internal/core"
)

// Ports for inbound ledger adapters.
type (
	// RowSource yields every data row of a ledger, keyed by header name, in
	// source order. A ledger that cannot be located or read is reported with
	// an error wrapping core.ErrSourceUnavailable.
	RowSource interface {
		Rows(ctx context.Context) ([]core.RawRow, error)
		Name() string
	}
)

// RowsFromTable maps a header line and data lines into raw rows. Headers
// that are empty after trimming are skipped along with their cells, and
// missing trailing cells read as empty strings. Lines with no non-blank cell
// are ignored.
func RowsFromTable(header []string, records [][]string) []core.RawRow {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}

	out := make([]core.RawRow, 0, len(records))
	for _, rec := range records {
		if blank(rec) {
			continue
		}
		row := make(core.RawRow, len(names))
		for i, name := range names {
			if name == "" {
				continue
			}
			if _, dup := row[name]; dup {
				continue
			}
			row[name] = safeGet(rec, i)
		}
		out = append(out, row)
	}
	return out
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
