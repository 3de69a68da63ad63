package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"gastos/internal/core"
)

func TestRowsFromValues(t *testing.T) {
	values := [][]interface{}{
		{"Fecha", "Categoría", "Descripción", " Monto "},
		{"01/03/2024", "Comida", "Almuerzo", "S/ 25,50"},
		{"02/03/2024", "Transporte"},
		{},
	}
	rows := rowsFromValues(values)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Monto"] != "S/ 25,50" {
		t.Errorf("unexpected amount %q", rows[0]["Monto"])
	}
	if rows[1]["Descripción"] != "" {
		t.Errorf("missing cell should be empty")
	}
}

func TestRowsFromValues_Empty(t *testing.T) {
	if rows := rowsFromValues(nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func newTestService(t *testing.T, handler http.HandlerFunc) *gsheet.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	svc, err := gsheet.NewService(context.Background(),
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithoutAuthentication(),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

func TestClient_Rows(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "sheet-123") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"Gastos!A1:D3","majorDimension":"ROWS","values":[
			["Fecha","Categoría","Descripción","Monto"],
			["01/03/2024","Comida","Almuerzo","S/ 25,50"],
			["02/03/2024","Ocio","Cine","S/ 30,00"]]}`))
	})

	c := NewWithService(svc, "sheet-123", "Gastos!A:D", nil)
	rows, err := c.Rows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 || rows[1]["Categoría"] != "Ocio" {
		t.Fatalf("unexpected rows %v", rows)
	}
	if c.Name() != "sheets:sheet-123/Gastos!A:D" {
		t.Fatalf("unexpected name %q", c.Name())
	}
}

func TestClient_RowsAPIError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	})

	_, err := NewWithService(svc, "sheet-123", "Gastos!A:D", nil).Rows(context.Background())
	if !errors.Is(err, core.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	if _, err := New(context.Background(), "sheet-123", "A:D", nil); err == nil {
		t.Fatal("expected error without credentials")
	}
	if _, err := New(context.Background(), " ", "A:D", nil); err == nil {
		t.Fatal("expected error without spreadsheet id")
	}
}
