// Package storage keeps imported ledgers in SQLite so they can be analyzed
// again without the original file.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"gastos/internal/core"
	"gastos/internal/ledger"
	"gastos/internal/sources"

	_ "modernc.org/sqlite"
)

// Store holds raw ledger rows per source. Cells are stored as read, without
// normalization, under the canonical header names.
type Store struct {
	db     *sql.DB
	schema ledger.Schema
}

var _ sources.RowSource = (*Store)(nil)

// SourceInfo describes one imported ledger.
type SourceInfo struct {
	Name string
	Rows int
}

// Open opens or creates the store at dbPath and runs migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, schema: ledger.DefaultSchema()}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ImportRows replaces the rows stored for source with rows, in one
// transaction. It returns the number of rows written.
func (s *Store) ImportRows(ctx context.Context, source string, rows []core.RawRow) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_rows WHERE source = ?`, source); err != nil {
		return 0, fmt.Errorf("clear source %s: %w", source, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ledger_rows
		(source, row_index, fecha, categoria, descripcion, monto)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		c := s.schema.Canonical(row)
		if _, err := stmt.ExecContext(ctx, source, i,
			c[s.header(s.schema.Date)],
			c[s.header(s.schema.Category)],
			c[s.header(s.schema.Description)],
			c[s.header(s.schema.Amount)],
		); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(rows), nil
}

// Rows returns every stored row, grouped by source in name order.
func (s *Store) Rows(ctx context.Context) ([]core.RawRow, error) {
	return s.query(ctx, `SELECT fecha, categoria, descripcion, monto
		FROM ledger_rows ORDER BY source, row_index`)
}

// Sources lists the imported ledgers.
func (s *Store) Sources(ctx context.Context) ([]SourceInfo, error) {
	rs, err := s.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM ledger_rows
		GROUP BY source ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("%w: list sources: %v", core.ErrSourceUnavailable, err)
	}
	defer rs.Close()

	var out []SourceInfo
	for rs.Next() {
		var info SourceInfo
		if err := rs.Scan(&info.Name, &info.Rows); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		out = append(out, info)
	}
	return out, rs.Err()
}

func (s *Store) Name() string {
	return "sqlite"
}

// Source returns a view over the rows imported under name.
func (s *Store) Source(name string) *SourceView {
	return &SourceView{store: s, name: name}
}

// SourceView is a RowSource over a single imported ledger.
type SourceView struct {
	store *Store
	name  string
}

var _ sources.RowSource = (*SourceView)(nil)

func (v *SourceView) Name() string {
	return "sqlite:" + v.name
}

func (v *SourceView) Rows(ctx context.Context) ([]core.RawRow, error) {
	rows, err := v.store.query(ctx, `SELECT fecha, categoria, descripcion, monto
		FROM ledger_rows WHERE source = ? ORDER BY row_index`, v.name)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no ledger imported as %q", core.ErrSourceUnavailable, v.name)
	}
	return rows, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]core.RawRow, error) {
	rs, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query ledger rows: %v", core.ErrSourceUnavailable, err)
	}
	defer rs.Close()

	out := make([]core.RawRow, 0)
	for rs.Next() {
		var fecha, categoria, descripcion, monto string
		if err := rs.Scan(&fecha, &categoria, &descripcion, &monto); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		out = append(out, core.RawRow{
			s.header(s.schema.Date):        fecha,
			s.header(s.schema.Category):    categoria,
			s.header(s.schema.Description): descripcion,
			s.header(s.schema.Amount):      monto,
		})
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return out, nil
}

func (s *Store) header(names []string) string {
	return names[0]
}
