package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDateDaysUntil(t *testing.T) {
	cases := []struct {
		from, to Date
		want     int
	}{
		{NewDate(2024, 1, 1), NewDate(2024, 1, 1), 0},
		{NewDate(2024, 1, 1), NewDate(2024, 1, 2), 1},
		{NewDate(2024, 2, 28), NewDate(2024, 3, 1), 2},
		{NewDate(2023, 12, 31), NewDate(2024, 12, 31), 366},
		{NewDate(1700, 1, 1), NewDate(2024, 1, 1), 118338},
		{NewDate(2024, 1, 1), NewDate(1700, 1, 1), -118338},
	}
	for i, tc := range cases {
		if got := tc.from.DaysUntil(tc.to); got != tc.want {
			t.Fatalf("case %d: got %d, want %d", i, got, tc.want)
		}
	}
}

func TestDatasetIsACopy(t *testing.T) {
	src := []Expense{
		{Date: NewDate(2024, 1, 1), Category: "Comida", Amount: decimal.NewFromInt(10)},
	}
	ds := NewDataset(src)
	src[0].Category = "changed"
	if ds.At(0).Category != "Comida" {
		t.Fatalf("dataset shares backing array with input")
	}

	recs := ds.Records()
	recs[0].Category = "changed"
	if ds.At(0).Category != "Comida" {
		t.Fatalf("Records exposes internal slice")
	}

	if ds.Len() != 1 || ds.Empty() {
		t.Fatalf("unexpected len/empty: %d %v", ds.Len(), ds.Empty())
	}
	if !(Dataset{}).Empty() {
		t.Fatalf("zero dataset should be empty")
	}
}
