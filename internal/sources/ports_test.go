package sources

import (
	"testing"
)

func TestRowsFromTable(t *testing.T) {
	header := []string{"Fecha", " Categoría ", "Descripción", " Monto ", ""}
	records := [][]string{
		{"01/03/2024", "Comida", "Almuerzo", "S/ 25,50", ""},
		{"02/03/2024", "Transporte"},
		{"", " ", "", "", ""},
		{"03/03/2024", "Ocio", "Cine", "S/ 30,00", "ignored", "extra"},
	}

	rows := RowsFromTable(header, records)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (blank line skipped), got %d", len(rows))
	}

	if got := rows[0]["Monto"]; got != "S/ 25,50" {
		t.Errorf("expected trimmed header lookup, got %q", got)
	}
	if _, ok := rows[0][""]; ok {
		t.Errorf("empty header must not produce a column")
	}
	if got, ok := rows[1]["Monto"]; !ok || got != "" {
		t.Errorf("missing trailing cell should be empty, got %q (present=%v)", got, ok)
	}
	if len(rows[2]) != 4 {
		t.Errorf("expected 4 named columns, got %d", len(rows[2]))
	}
}

func TestRowsFromTable_DuplicateHeaderKeepsFirst(t *testing.T) {
	rows := RowsFromTable([]string{"Monto", "Monto"}, [][]string{{"1", "2"}})
	if got := rows[0]["Monto"]; got != "1" {
		t.Fatalf("expected first duplicate column to win, got %q", got)
	}
}
