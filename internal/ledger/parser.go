// Package ledger turns raw ledger rows into typed expenses.
//
// The Parser is the record parser and the dataset normalizer: ParseRow
// converts one row, Normalize folds a whole sequence of rows into a
// core.Dataset while counting the rows it had to drop.
package ledger

import (
	"fmt"
	"sort"
	"strings"

	"gastos/internal/core"
)

// Field identifies one of the four ledger columns.
type Field string

const (
	FieldDate        Field = "date"
	FieldCategory    Field = "category"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
)

// Schema lists the accepted header names for each field. Headers are matched
// after trimming, case-insensitively.
type Schema struct {
	Date        []string
	Category    []string
	Description []string
	Amount      []string
}

// DefaultSchema accepts the Spanish headers of the monthly ledger export and
// their English equivalents.
func DefaultSchema() Schema {
	return Schema{
		Date:        []string{"Fecha", "Date"},
		Category:    []string{"Categoría", "Categoria", "Category"},
		Description: []string{"Descripción", "Descripcion", "Description"},
		Amount:      []string{"Monto", "Amount"},
	}
}

// FieldError reports a field that could not be converted. The row owning
// the field is dropped.
type FieldError struct {
	Field Field
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Parser converts raw rows. The zero value is not usable; use NewParser.
type Parser struct {
	schema         Schema
	currencyPrefix string
}

// Option configures a Parser.
type Option func(*Parser)

// WithSchema overrides the header aliases.
func WithSchema(s Schema) Option {
	return func(p *Parser) { p.schema = s }
}

// WithCurrencyPrefix overrides the currency symbol stripped from amounts.
func WithCurrencyPrefix(prefix string) Option {
	return func(p *Parser) { p.currencyPrefix = prefix }
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		schema:         DefaultSchema(),
		currencyPrefix: core.DefaultCurrencyPrefix,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseRow converts one raw row into an Expense. A row whose amount or date
// cannot be converted yields a *FieldError and no expense.
func (p *Parser) ParseRow(row core.RawRow) (core.Expense, error) {
	rawAmount := lookup(row, p.schema.Amount)
	amount, err := core.ParseAmount(rawAmount, p.currencyPrefix)
	if err != nil {
		return core.Expense{}, &FieldError{Field: FieldAmount, Value: rawAmount, Err: err}
	}

	rawDate := lookup(row, p.schema.Date)
	date, err := core.ParseDate(rawDate)
	if err != nil {
		return core.Expense{}, &FieldError{Field: FieldDate, Value: rawDate, Err: err}
	}

	category := strings.TrimSpace(lookup(row, p.schema.Category))
	if category == "" {
		category = core.UncategorizedLabel
	}

	return core.Expense{
		Date:        date,
		Category:    category,
		Description: strings.TrimSpace(lookup(row, p.schema.Description)),
		Amount:      amount,
	}, nil
}

// lookup returns the value of the first header matching one of names.
// Header and name are both trimmed before comparison. An exact match wins,
// then a match after trimming, then a case-insensitive one; within a tier
// the smallest key is taken.
func lookup(row core.RawRow, names []string) string {
	var keys []string
	for _, name := range names {
		want := strings.TrimSpace(name)
		if v, ok := row[want]; ok {
			return v
		}
		if keys == nil {
			keys = sortedKeys(row)
		}
		for _, k := range keys {
			if k != want && strings.TrimSpace(k) == want {
				return row[k]
			}
		}
		for _, k := range keys {
			if strings.EqualFold(strings.TrimSpace(k), want) {
				return row[k]
			}
		}
	}
	return ""
}

func sortedKeys(row core.RawRow) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Canonical re-keys row under the first header name of each field. Columns
// outside the schema are dropped.
func (s Schema) Canonical(row core.RawRow) core.RawRow {
	return core.RawRow{
		first(s.Date):        lookup(row, s.Date),
		first(s.Category):    lookup(row, s.Category),
		first(s.Description): lookup(row, s.Description),
		first(s.Amount):      lookup(row, s.Amount),
	}
}

func first(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimSpace(names[0])
}
