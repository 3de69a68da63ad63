package memory

import (
	"context"
	"errors"
	"testing"

	"gastos/internal/core"
)

func TestStore_RowsAreCopies(t *testing.T) {
	s := New(core.RawRow{"Monto": "S/ 1,00"})
	s.Append(core.RawRow{"Monto": "S/ 2,00"})

	rows, err := s.Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	rows[0]["Monto"] = "changed"

	again, _ := s.Rows(context.Background())
	if again[0]["Monto"] != "S/ 1,00" {
		t.Fatalf("store should not share row maps with callers")
	}
}

func TestStore_Unavailable(t *testing.T) {
	_, err := Unavailable("offline").Rows(context.Background())
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
