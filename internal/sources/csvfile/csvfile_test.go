package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"gastos/internal/core"
)

const ledger = "Fecha;Categoría;Descripción; Monto ;\n" +
	"01/03/2024;Comida;Almuerzo;S/ 25,50;\n" +
	"02/03/2024;Transporte;Taxi;S/ 12,00;\n"

func writeFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gastos.csv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write ledger: %v", err)
	}
	return path
}

func TestRows_UTF8(t *testing.T) {
	src := New(writeFile(t, []byte(ledger)))
	rows, err := src.Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := rows[0]["Categoría"]; got != "Comida" {
		t.Errorf("expected Comida, got %q", got)
	}
	if got := rows[1]["Monto"]; got != "S/ 12,00" {
		t.Errorf("expected trimmed amount header, got %q", got)
	}
	if len(rows[0]) != 4 {
		t.Errorf("trailing empty column should be ignored, got %d columns", len(rows[0]))
	}
}

func TestRows_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(ledger))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := writeFile(t, encoded)

	for _, enc := range []string{EncodingAuto, EncodingLatin1} {
		t.Run(enc, func(t *testing.T) {
			rows, err := New(path, WithEncoding(enc)).Rows(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := rows[0]["Descripción"]; got != "Almuerzo" {
				t.Fatalf("expected decoded header, got row %v", rows[0])
			}
		})
	}
}

func TestRows_BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(ledger)...)
	rows, err := New(writeFile(t, data)).Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rows[0]["Fecha"]; got != "01/03/2024" {
		t.Fatalf("BOM should not leak into the first header, got row %v", rows[0])
	}
}

func TestRows_CommaDelimiter(t *testing.T) {
	data := "Fecha,Categoría,Descripción,Monto\n01/03/2024,Comida,Almuerzo,\"S/ 25,50\"\n"
	rows, err := New(writeFile(t, []byte(data)), WithDelimiter(',')).Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rows[0]["Monto"]; got != "S/ 25,50" {
		t.Fatalf("expected quoted amount, got %q", got)
	}
}

func TestRows_RaggedAndBlankLines(t *testing.T) {
	data := "Fecha;Categoría;Descripción;Monto\n01/03/2024;Comida\n\n;;;\n02/03/2024;Ocio;Cine;S/ 30,00;x\n"
	rows, err := New(writeFile(t, []byte(data))).Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Monto"] != "" {
		t.Errorf("short row should have empty amount")
	}
}

func TestRows_EmptyFile(t *testing.T) {
	rows, err := New(writeFile(t, nil)).Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestRows_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.csv")).Rows(context.Background())
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestRows_UnknownEncoding(t *testing.T) {
	_, err := New(writeFile(t, []byte(ledger)), WithEncoding("utf-16")).Rows(context.Background())
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestRows_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(writeFile(t, []byte(ledger))).Rows(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestName(t *testing.T) {
	if got := New("/tmp/x.csv").Name(); got != "csv:/tmp/x.csv" {
		t.Fatalf("unexpected name %q", got)
	}
}
