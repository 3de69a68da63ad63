package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"gastos/internal/core"
	"gastos/internal/ledger"
)

const ruleWidth = 60

var fieldLabels = map[ledger.Field]string{
	ledger.FieldDate:        "fecha",
	ledger.FieldCategory:    "categoría",
	ledger.FieldDescription: "descripción",
	ledger.FieldAmount:      "monto",
}

// Console writes the human-readable report.
type Console struct {
	w      io.Writer
	prefix string
}

func NewConsole(w io.Writer, currencyPrefix string) *Console {
	if currencyPrefix == "" {
		currencyPrefix = core.DefaultCurrencyPrefix
	}
	return &Console{w: w, prefix: currencyPrefix}
}

func (c *Console) Name() string { return "console" }

// Present renders the whole report with a single write.
func (c *Console) Present(_ context.Context, doc *Document) error {
	var b bytes.Buffer
	c.header(&b, doc)
	c.stats(&b, doc)
	c.categories(&b, doc)
	c.top(&b, doc)
	_, err := c.w.Write(b.Bytes())
	return err
}

// PresentEmpty prints the notice shown when no record survived normalization.
func (c *Console) PresentEmpty(_ context.Context, doc *Document) error {
	var b bytes.Buffer
	c.header(&b, doc)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, " No hay registros válidos para analizar.")
	_, err := c.w.Write(b.Bytes())
	return err
}

func (c *Console) header(b *bytes.Buffer, doc *Document) {
	rule(b, "=")
	fmt.Fprintln(b, " ANÁLISIS DE GASTOS PERSONALES")
	rule(b, "=")
	line(b, "Fuente:", doc.Source)
	if doc.RunID != "" {
		line(b, "Ejecución:", doc.RunID)
	}
	n := doc.Normalization
	quality := fmt.Sprintf("%d de %d", n.Valid, n.Total)
	if n.Dropped > 0 {
		parts := make([]string, 0, len(n.DroppedByField))
		for _, f := range droppedFields(n) {
			label := fieldLabels[f]
			if label == "" {
				label = string(f)
			}
			parts = append(parts, fmt.Sprintf("%s %d", label, n.DroppedByField[f]))
		}
		quality += fmt.Sprintf(" (%d descartados: %s)", n.Dropped, strings.Join(parts, ", "))
	}
	line(b, "Registros válidos:", quality)
}

func (c *Console) stats(b *bytes.Buffer, doc *Document) {
	st := doc.Analysis.Stats
	section(b, "ESTADÍSTICAS GENERALES")
	line(b, "Total gastado:", c.money(st.Sum))
	line(b, "Promedio:", c.money(st.Mean))
	line(b, "Mediana:", c.money(st.Median))
	line(b, "Gasto mínimo:", c.money(st.Min))
	line(b, "Gasto máximo:", c.money(st.Max))
	line(b, "Transacciones:", fmt.Sprint(st.Count))
	line(b, "Período:", st.FirstDate.String()+" - "+st.LastDate.String())
	line(b, "Días analizados:", fmt.Sprint(st.DaySpan))
	line(b, "Promedio diario:", c.money(st.AveragePerDay))
}

func (c *Console) categories(b *bytes.Buffer, doc *Document) {
	cats := doc.Analysis.Categories
	section(b, "ANÁLISIS POR CATEGORÍA")
	fmt.Fprintf(b, " %s %s %s %s %s\n",
		cell("Categoría", 18), rcell("Total", 14), rcell("Cantidad", 8), rcell("Promedio", 14), rcell("%", 8))
	for _, ct := range cats {
		fmt.Fprintf(b, " %s %s %s %s %s\n",
			cell(ct.Category, 18),
			rcell(c.money(ct.Total), 14),
			rcell(fmt.Sprint(ct.Count), 8),
			rcell(c.money(ct.Mean), 14),
			rcell(ct.Percentage.StringFixed(2), 8))
	}
	if len(cats) == 0 {
		return
	}
	fmt.Fprintln(b)
	fmt.Fprintln(b, " Interpretación:")
	fmt.Fprintf(b, "   • Tu mayor gasto es en: %s\n", cats[0].Category)
	fmt.Fprintf(b, "   • Monto: %s (%s%% del total)\n", c.money(cats[0].Total), cats[0].Percentage.StringFixed(2))
}

func (c *Console) top(b *bytes.Buffer, doc *Document) {
	top := doc.Analysis.Top
	section(b, fmt.Sprintf("TOP %d GASTOS MÁS ALTOS", doc.TopK))
	for _, e := range top.Items {
		fmt.Fprintf(b, "   %s | %s | %s | %s\n",
			e.Date.String(),
			cell(e.Category, 15),
			cell(e.Description, 30),
			rcell(c.money(e.Amount), 14))
	}
	fmt.Fprintf(b, "\n Estos %d gastos representan %s (%s%% del total)\n",
		len(top.Items), c.money(top.Sum), top.Share.StringFixed(2))
}

// money formats d as "S/ 1,234.50".
func (c *Console) money(d decimal.Decimal) string {
	return c.prefix + " " + humanize.FormatFloat("#,###.##", core.Round2(d).InexactFloat64())
}

func rule(b *bytes.Buffer, ch string) {
	fmt.Fprintln(b, strings.Repeat(ch, ruleWidth))
}

func section(b *bytes.Buffer, title string) {
	fmt.Fprintln(b)
	rule(b, "=")
	fmt.Fprintln(b, " "+title)
	rule(b, "=")
}

func line(b *bytes.Buffer, label, value string) {
	fmt.Fprintf(b, " %s %s\n", cell(label, 19), value)
}

// cell left-aligns s in a column of width display cells, truncating long text.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func rcell(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
