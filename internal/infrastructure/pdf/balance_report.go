// Package pdf genera el reporte de saldos de cajas por cliente con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cliente | NEG | VER | ORU | ... | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES por tipo de caja                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/cajas-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 41, Blue: 59}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 241, Green: 245, Blue: 249}
)

// La grilla de Maroto tiene 12 columnas: cliente (mín. 3) + tipos + total (1).
const maxTypeColumns = 8

var _ ports.BalanceReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.BalanceReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateBalanceReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBalanceReport(report *ports.BalanceReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Saldos de cajas por cliente", true).
		Build()

	m := maroto.New(cfg)
	cols := layoutColumns(report.CrateTypes)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(cols))
	if len(report.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Ningún cliente tiene cajas en préstamo.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	for i, r := range report.Rows {
		m.AddRows(clientRow(cols, r, i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(cols, report.Rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de saldos: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Columnas ──────────────────────────────────────────────────────────────────

// column una columna de cantidades: uno o varios tipos de caja sumados ("Otros").
type column struct {
	label string
	ids   []string
}

func (c column) sum(q map[string]int) int {
	n := 0
	for _, id := range c.ids {
		n += q[id]
	}
	return n
}

type layout struct {
	clientSize int
	types      []column
}

// layoutColumns reparte la grilla; a partir del tipo maxTypeColumns se agrupan en "Otros".
func layoutColumns(types []ports.ReportCrateType) layout {
	var cols []column
	for i, t := range types {
		if i < maxTypeColumns-1 || len(types) == maxTypeColumns {
			cols = append(cols, column{label: t.Code, ids: []string{t.ID}})
			continue
		}
		if len(cols) < maxTypeColumns {
			cols = append(cols, column{label: "Otros"})
		}
		cols[len(cols)-1].ids = append(cols[len(cols)-1].ids, t.ID)
	}
	return layout{clientSize: 12 - len(cols) - 1, types: cols}
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *ports.BalanceReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("SALDOS DE CAJAS POR CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d clientes con cajas en préstamo", len(report.Rows)), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(l layout) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	cols := []core.Col{h("Cliente", l.clientSize, align.Left)}
	for _, c := range l.types {
		cols = append(cols, h(c.label, 1, align.Center))
	}
	cols = append(cols, h("Total", 1, align.Right))
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func clientRow(l layout, r ports.ReportRow, striped bool) core.Row {
	cell := func(s string, size int, a align.Type, style fontstyle.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Style: style, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	cols := []core.Col{cell(r.ClientName, l.clientSize, align.Left, fontstyle.Normal)}
	for _, c := range l.types {
		cols = append(cols, cell(quantity(c.sum(r.Quantities)), 1, align.Center, fontstyle.Normal))
	}
	cols = append(cols, cell(strconv.Itoa(r.Total()), 1, align.Right, fontstyle.Bold))

	out := row.New(7).Add(cols...)
	if striped {
		out = out.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return out
}

func totalsRow(l layout, rows []ports.ReportRow) core.Row {
	bold := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	grand := 0
	cols := []core.Col{bold("TOTAL EN PRÉSTAMO", l.clientSize, align.Left)}
	for _, c := range l.types {
		n := 0
		for _, r := range rows {
			n += c.sum(r.Quantities)
		}
		grand += n
		cols = append(cols, bold(strconv.Itoa(n), 1, align.Center))
	}
	cols = append(cols, bold(strconv.Itoa(grand), 1, align.Right))
	return row.New(8).Add(cols...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// quantity muestra el cero como "—".
func quantity(n int) string {
	if n == 0 {
		return "—"
	}
	return strconv.Itoa(n)
}
