package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"gastos/internal/core"
)

// Workbook sheet names.
const (
	SheetSummary    = "Resumen"
	SheetCategories = "Categorias"
	SheetDaily      = "Diario"
	SheetTop        = "Top"
)

// XLSX writes the report as a workbook with a bar chart of category totals,
// a pie chart of their distribution and a line chart of the daily trend.
type XLSX struct {
	path string
}

func NewXLSX(path string) *XLSX {
	return &XLSX{path: path}
}

func (x *XLSX) Name() string { return "xlsx" }

func (x *XLSX) Present(ctx context.Context, doc *Document) error {
	f, err := buildWorkbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.SaveAs(x.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", x.path, err)
	}
	return nil
}

type workbook struct {
	f       *excelize.File
	bold    int
	money   int
	percent int
}

func buildWorkbook(doc *Document) (*excelize.File, error) {
	f := excelize.NewFile()
	wb := &workbook{f: f}
	steps := []func(*Document) error{
		wb.styles,
		wb.summary,
		wb.categories,
		wb.daily,
		wb.top,
	}
	for _, step := range steps {
		if err := step(doc); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func (wb *workbook) styles(*Document) error {
	var err error
	if wb.bold, err = wb.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if wb.money, err = wb.f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if wb.percent, err = wb.f.NewStyle(&excelize.Style{NumFmt: 2}); err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	return nil
}

func (wb *workbook) summary(doc *Document) error {
	if err := wb.f.SetSheetName(wb.f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	st := doc.Analysis.Stats
	n := doc.Normalization
	rows := [][]interface{}{
		{"Fuente", doc.Source},
		{"Ejecución", doc.RunID},
		{"Generado", doc.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Registros leídos", n.Total},
		{"Registros válidos", n.Valid},
		{"Registros descartados", n.Dropped},
		{"Total gastado", st.Sum.InexactFloat64()},
		{"Promedio", st.Mean.InexactFloat64()},
		{"Mediana", st.Median.InexactFloat64()},
		{"Gasto mínimo", st.Min.InexactFloat64()},
		{"Gasto máximo", st.Max.InexactFloat64()},
		{"Transacciones", st.Count},
		{"Primera fecha", st.FirstDate.String()},
		{"Última fecha", st.LastDate.String()},
		{"Días analizados", st.DaySpan},
		{"Promedio diario", st.AveragePerDay.InexactFloat64()},
	}
	if err := wb.rows(SheetSummary, rows); err != nil {
		return err
	}
	if err := wb.f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), wb.bold); err != nil {
		return fmt.Errorf("style summary: %w", err)
	}
	if err := wb.f.SetCellStyle(SheetSummary, "B7", "B11", wb.money); err != nil {
		return fmt.Errorf("style summary: %w", err)
	}
	if err := wb.f.SetCellStyle(SheetSummary, "B16", "B16", wb.money); err != nil {
		return fmt.Errorf("style summary: %w", err)
	}
	return wb.f.SetColWidth(SheetSummary, "A", "B", 24)
}

func (wb *workbook) categories(doc *Document) error {
	cats := doc.Analysis.Categories
	rows := [][]interface{}{{"Categoría", "Total", "Cantidad", "Promedio", "Porcentaje"}}
	for _, c := range cats {
		rows = append(rows, []interface{}{
			c.Category,
			c.Total.InexactFloat64(),
			c.Count,
			c.Mean.InexactFloat64(),
			c.Percentage.InexactFloat64(),
		})
	}
	if err := wb.table(SheetCategories, rows, "E"); err != nil {
		return err
	}
	last := len(rows)
	if last > 1 {
		if err := wb.f.SetCellStyle(SheetCategories, "B2", fmt.Sprintf("B%d", last), wb.money); err != nil {
			return fmt.Errorf("style categories: %w", err)
		}
		if err := wb.f.SetCellStyle(SheetCategories, "D2", fmt.Sprintf("E%d", last), wb.money); err != nil {
			return fmt.Errorf("style categories: %w", err)
		}
	}
	if len(cats) == 0 {
		return nil
	}

	series := []excelize.ChartSeries{{
		Name:       fmt.Sprintf("%s!$B$1", SheetCategories),
		Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetCategories, last),
		Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetCategories, last),
	}}
	if err := wb.f.AddChart(SheetCategories, "G2", &excelize.Chart{
		Type:   excelize.Col,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: "Gastos Totales por Categoría"}},
		Legend: excelize.ChartLegend{Position: "none"},
	}); err != nil {
		return fmt.Errorf("add category chart: %w", err)
	}
	if err := wb.f.AddChart(SheetCategories, "G20", &excelize.Chart{
		Type:     excelize.Pie,
		Series:   series,
		Title:    []excelize.RichTextRun{{Text: "Distribución Porcentual por Categoría"}},
		Legend:   excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{ShowPercent: true},
	}); err != nil {
		return fmt.Errorf("add distribution chart: %w", err)
	}
	return nil
}

func (wb *workbook) daily(doc *Document) error {
	days := doc.Analysis.Daily
	rows := [][]interface{}{{"Fecha", "Total"}}
	for _, d := range days {
		rows = append(rows, []interface{}{d.Date.String(), d.Total.InexactFloat64()})
	}
	if err := wb.table(SheetDaily, rows, "B"); err != nil {
		return err
	}
	if len(days) == 0 {
		return nil
	}
	last := len(rows)
	if err := wb.f.SetCellStyle(SheetDaily, "B2", fmt.Sprintf("B%d", last), wb.money); err != nil {
		return fmt.Errorf("style daily: %w", err)
	}
	if err := wb.f.AddChart(SheetDaily, "D2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", SheetDaily),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetDaily, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetDaily, last),
			Marker:     excelize.ChartMarker{Symbol: "circle", Size: 6},
		}},
		Title:  []excelize.RichTextRun{{Text: "Tendencia de Gastos en el Tiempo"}},
		Legend: excelize.ChartLegend{Position: "none"},
	}); err != nil {
		return fmt.Errorf("add daily chart: %w", err)
	}
	return nil
}

func (wb *workbook) top(doc *Document) error {
	rows := [][]interface{}{{"Fecha", "Categoría", "Descripción", "Monto"}}
	for _, e := range doc.Analysis.Top.Items {
		rows = append(rows, []interface{}{e.Date.String(), e.Category, e.Description, e.Amount.InexactFloat64()})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Suma", "", "", core.Round2(doc.Analysis.Top.Sum).InexactFloat64()},
		[]interface{}{"% del total", "", "", doc.Analysis.Top.Share.InexactFloat64()},
	)
	if err := wb.table(SheetTop, rows, "D"); err != nil {
		return err
	}
	last := len(rows)
	if err := wb.f.SetCellStyle(SheetTop, "D2", fmt.Sprintf("D%d", last-1), wb.money); err != nil {
		return fmt.Errorf("style top: %w", err)
	}
	if err := wb.f.SetCellStyle(SheetTop, fmt.Sprintf("D%d", last), fmt.Sprintf("D%d", last), wb.percent); err != nil {
		return fmt.Errorf("style top: %w", err)
	}
	return wb.f.SetColWidth(SheetTop, "C", "C", 32)
}

// table creates sheet, writes rows from A1 and bolds the header up to lastCol.
func (wb *workbook) table(sheet string, rows [][]interface{}, lastCol string) error {
	if _, err := wb.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := wb.rows(sheet, rows); err != nil {
		return err
	}
	if err := wb.f.SetCellStyle(sheet, "A1", lastCol+"1", wb.bold); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return wb.f.SetColWidth(sheet, "A", lastCol, 16)
}

func (wb *workbook) rows(sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := wb.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
