package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gastos/internal/analysis"
	"gastos/internal/core"
	"gastos/internal/ledger"
	"gastos/internal/log"
	"gastos/internal/report"
	"gastos/internal/sources"
)

// AnalysisService runs one load, normalize, analyze and present cycle.
type AnalysisService struct {
	source     sources.RowSource
	parser     *ledger.Parser
	presenters []report.Presenter
	logger     *log.Logger
	topK       int
	now        func() time.Time
}

func NewAnalysisService(source sources.RowSource, parser *ledger.Parser, topK int, logger *log.Logger, presenters ...report.Presenter) *AnalysisService {
	if parser == nil {
		parser = ledger.NewParser()
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &AnalysisService{
		source:     source,
		parser:     parser,
		presenters: presenters,
		logger:     logger.WithComponent(log.ComponentAnalysis),
		topK:       topK,
		now:        time.Now,
	}
}

// Run analyzes the ledger and hands the result to every presenter.
//
// A source failure is returned before anything is parsed. A ledger with no
// valid record returns core.ErrEmptyDataset together with a Document that
// carries only the normalization counts.
func (s *AnalysisService) Run(ctx context.Context) (*report.Document, error) {
	start := s.now()
	doc := &report.Document{
		RunID:       uuid.NewString(),
		Source:      s.source.Name(),
		GeneratedAt: start,
		TopK:        s.topK,
	}
	logger := s.logger.With(log.FieldRunID, doc.RunID, log.FieldSource, doc.Source)

	rows, err := s.source.Rows(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load ledger", log.NewFields().WithOperation(log.OpLoad).WithError(err).ToSlice()...)
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	logger.InfoContext(ctx, "Ledger loaded", log.FieldRows, len(rows))

	ds, norm := s.parser.Normalize(rows)
	doc.Normalization = norm
	s.logNormalization(ctx, logger.WithComponent(log.ComponentLedger), norm)

	if ds.Empty() {
		logger.WarnContext(ctx, "No valid records in ledger", log.FieldRows, norm.Total)
		doc.Analysis, _ = analysis.Analyze(ds, s.topK)
		if err := report.NotifyEmpty(ctx, doc, s.presenters...); err != nil {
			return doc, errors.Join(core.ErrEmptyDataset, err)
		}
		return doc, core.ErrEmptyDataset
	}

	doc.Analysis, err = analysis.Analyze(ds, s.topK)
	if err != nil {
		return doc, fmt.Errorf("analyze ledger: %w", err)
	}
	logger.InfoContext(ctx, "Ledger analyzed",
		log.FieldOperation, log.OpAnalyze,
		log.FieldCategories, len(doc.Analysis.Categories),
		log.FieldDays, doc.Analysis.Stats.DaySpan,
		log.FieldTopK, s.topK)

	reportLogger := logger.WithComponent(log.ComponentReport)
	if err := report.PresentAll(ctx, doc, s.presenters...); err != nil {
		reportLogger.ErrorContext(ctx, "Failed to present report", log.NewFields().WithOperation(log.OpPresent).WithError(err).ToSlice()...)
		return doc, fmt.Errorf("present report: %w", err)
	}
	reportLogger.InfoContext(ctx, "Report presented",
		log.FieldOperation, log.OpPresent,
		log.FieldPresenter, presenterNames(s.presenters),
		log.FieldDuration, s.now().Sub(start).Milliseconds())

	return doc, nil
}

func (s *AnalysisService) logNormalization(ctx context.Context, logger *log.Logger, norm ledger.NormalizeReport) {
	for _, f := range norm.Failures {
		logger.DebugContext(ctx, "Row dropped",
			log.FieldRowIndex, f.Index,
			log.FieldField, string(f.Field),
			log.FieldValue, f.Value,
			log.FieldError, f.Err)
	}
	args := log.NewFields().
		WithOperation(log.OpNormalize).
		WithNormalization(norm.Total, norm.Valid, norm.Dropped).
		ToSlice()
	if norm.Dropped > 0 {
		logger.WarnContext(ctx, "Ledger rows dropped during normalization", args...)
		return
	}
	logger.InfoContext(ctx, "Ledger normalized", args...)
}

func presenterNames(presenters []report.Presenter) []string {
	names := make([]string, len(presenters))
	for i, p := range presenters {
		names[i] = p.Name()
	}
	return names
}
