package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the day/month/year layout used by the ledger.
const DateLayout = "02/01/2006"

// UncategorizedLabel replaces an empty category cell.
const UncategorizedLabel = "(sin categoría)"

type (
	// RawRow maps a header name, as read from the source, to its raw cell value.
	RawRow map[string]string

	Date struct {
		time.Time
	}

	// Expense is one normalized ledger record.
	Expense struct {
		Date        Date
		Category    string
		Description string
		Amount      decimal.Decimal
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDate       = errors.New("invalid date")
	ErrEmptyDataset      = errors.New("no valid records in ledger")
	ErrSourceUnavailable = errors.New("ledger source unavailable")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// String formats the date with DateLayout.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// DaysUntil returns the number of whole days from d to other. Both dates sit
// at UTC midnight; time.Duration saturates past ~292 years, so the count
// goes through Unix seconds.
func (d Date) DaysUntil(other Date) int {
	return int((other.Unix() - d.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// Dataset is the ordered, read-only collection of valid expenses.
type Dataset struct {
	records []Expense
}

// NewDataset copies records into a new Dataset.
func NewDataset(records []Expense) Dataset {
	return Dataset{records: append([]Expense(nil), records...)}
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.records)
}

// Empty reports whether the dataset holds no records.
func (d Dataset) Empty() bool {
	return len(d.records) == 0
}

// At returns the i-th record in source order.
func (d Dataset) At(i int) Expense {
	return d.records[i]
}

// Records returns a copy of the records in source order.
func (d Dataset) Records() []Expense {
	return append([]Expense(nil), d.records...)
}
