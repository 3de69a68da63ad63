// Package memory provides an in-memory ledger source for tests and demos.
package memory

import (
	"context"
	"fmt"
	"sync"

	"gastos/internal/core"
	"gastos/internal/sources"
)

var _ sources.RowSource = (*Store)(nil)

type Store struct {
	mu   sync.Mutex
	name string
	rows []core.RawRow
	err  error
}

func New(rows ...core.RawRow) *Store {
	s := &Store{name: "memory"}
	s.rows = cloneRows(rows)
	return s
}

// Unavailable returns a store whose Rows always fails with
// core.ErrSourceUnavailable.
func Unavailable(reason string) *Store {
	return &Store{
		name: "memory",
		err:  fmt.Errorf("%w: %s", core.ErrSourceUnavailable, reason),
	}
}

// Append adds a row to the end of the ledger.
func (s *Store) Append(row core.RawRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, cloneRow(row))
}

func (s *Store) Name() string {
	return s.name
}

// Rows returns a copy of the stored rows.
func (s *Store) Rows(ctx context.Context) ([]core.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return cloneRows(s.rows), nil
}

func cloneRows(in []core.RawRow) []core.RawRow {
	out := make([]core.RawRow, len(in))
	for i, r := range in {
		out[i] = cloneRow(r)
	}
	return out
}

func cloneRow(r core.RawRow) core.RawRow {
	c := make(core.RawRow, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
