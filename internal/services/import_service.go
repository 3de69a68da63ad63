package services

import (
	"context"
	"fmt"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/sources"
)

// RowStore persists raw ledger rows under a source name.
type RowStore interface {
	ImportRows(ctx context.Context, source string, rows []core.RawRow) (int, error)
}

// ImportService copies a ledger into the row store without normalizing it.
type ImportService struct {
	store  RowStore
	logger *log.Logger
}

func NewImportService(store RowStore, logger *log.Logger) *ImportService {
	if logger == nil {
		logger = log.Discard()
	}
	return &ImportService{store: store, logger: logger.WithComponent(log.ComponentStorage)}
}

// Import reads every row of src and stores it as name, replacing any
// previous import under that name.
func (s *ImportService) Import(ctx context.Context, src sources.RowSource, name string) (int, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("load ledger: %w", err)
	}

	n, err := s.store.ImportRows(ctx, name, rows)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to import ledger",
			log.FieldOperation, log.OpImport,
			log.FieldSource, src.Name(),
			log.FieldError, err)
		return 0, fmt.Errorf("import ledger: %w", err)
	}

	s.logger.InfoContext(ctx, "Ledger imported",
		log.FieldOperation, log.OpImport,
		log.FieldSource, src.Name(),
		"name", name,
		log.FieldRows, n)
	return n, nil
}
