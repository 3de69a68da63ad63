// Package report renders an analyzed ledger: console text, JSON and an XLSX
// workbook with charts. Presenters only read the Document they are given.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"gastos/internal/analysis"
	"gastos/internal/ledger"
)

// Document is one analysis run together with its metadata.
type Document struct {
	RunID         string
	Source        string
	GeneratedAt   time.Time
	TopK          int
	Normalization ledger.NormalizeReport
	Analysis      analysis.Report
}

// Presenter renders a Document somewhere.
type Presenter interface {
	Name() string
	Present(ctx context.Context, doc *Document) error
}

// EmptyNotifier is implemented by presenters that report a run whose
// ledger had no valid records.
type EmptyNotifier interface {
	PresentEmpty(ctx context.Context, doc *Document) error
}

// PresentAll runs every presenter concurrently and returns the first error.
// Presenters writing to the same stream must be grouped with Sequence.
func PresentAll(ctx context.Context, doc *Document, presenters ...Presenter) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range presenters {
		g.Go(func() error {
			if err := p.Present(ctx, doc); err != nil {
				return fmt.Errorf("%s presenter: %w", p.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// NotifyEmpty calls PresentEmpty on the presenters that implement it.
func NotifyEmpty(ctx context.Context, doc *Document, presenters ...Presenter) error {
	for _, p := range presenters {
		n, ok := p.(EmptyNotifier)
		if !ok {
			continue
		}
		if err := n.PresentEmpty(ctx, doc); err != nil {
			return fmt.Errorf("%s presenter: %w", p.Name(), err)
		}
	}
	return nil
}

// Sequence runs its presenters one after another in the given order. It
// keeps presenters that share a writer off concurrent goroutines.
type Sequence []Presenter

func (s Sequence) Name() string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name()
	}
	return strings.Join(names, "+")
}

func (s Sequence) Present(ctx context.Context, doc *Document) error {
	for _, p := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Present(ctx, doc); err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
	}
	return nil
}

func (s Sequence) PresentEmpty(ctx context.Context, doc *Document) error {
	return NotifyEmpty(ctx, doc, s...)
}
