package ledger

import (
	"errors"
	"testing"

	"gastos/internal/core"
)

func row(date, category, desc, amount string) core.RawRow {
	return core.RawRow{"Fecha": date, "Categoría": category, "Descripción": desc, " Monto ": amount}
}

func TestNormalize(t *testing.T) {
	rows := []core.RawRow{
		row("01/01/2024", "Comida", "almuerzo", "S/ 10,00"),
		row("01/01/2024", "Comida", "cena", "S/ sin monto"),
		row("1/1/2024", "Transporte", "bus", "S/ 5,00"),
		row("02/01/2024", "Transporte", "taxi", "S/ 12,50"),
		row("03/01/2024", "Ocio", "cine", ""),
	}

	ds, report := NewParser().Normalize(rows)

	if ds.Len() != 2 {
		t.Fatalf("expected 2 valid records, got %d", ds.Len())
	}
	if report.Total != len(rows) || report.Valid != 2 || report.Dropped != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if ds.Len() != report.Total-report.Dropped {
		t.Fatalf("dataset size invariant broken")
	}
	if report.DroppedByField[FieldAmount] != 2 || report.DroppedByField[FieldDate] != 1 {
		t.Fatalf("unexpected drops by field: %v", report.DroppedByField)
	}
	if ds.At(0).Description != "almuerzo" || ds.At(1).Description != "taxi" {
		t.Fatalf("source order not preserved: %+v", ds.Records())
	}

	wantIdx := []int{1, 2, 4}
	for i, f := range report.Failures {
		if f.Index != wantIdx[i] {
			t.Errorf("failure %d index = %d, want %d", i, f.Index, wantIdx[i])
		}
	}
	if f := report.Failures[1]; f.Field != FieldDate || f.Value != "1/1/2024" || !errors.Is(f.Err, core.ErrInvalidDate) {
		t.Errorf("unexpected date failure: %+v", f)
	}
	if report.Empty() {
		t.Errorf("report should not be empty")
	}
}

func TestNormalize_AllInvalid(t *testing.T) {
	rows := []core.RawRow{
		row("01/01/2024", "Comida", "x", "n/a"),
		row("xx", "Comida", "y", "1,00"),
	}
	ds, report := NewParser().Normalize(rows)
	if !ds.Empty() || !report.Empty() {
		t.Fatalf("expected empty result, got %d records", ds.Len())
	}
	if report.Dropped != 2 {
		t.Fatalf("expected 2 drops, got %d", report.Dropped)
	}
}

func TestNormalize_NoRows(t *testing.T) {
	ds, report := NewParser().Normalize(nil)
	if !ds.Empty() || report.Total != 0 || !report.Empty() {
		t.Fatalf("unexpected result for no rows: %+v", report)
	}
}
