// Package pdf genera el kardex (tarjeta de stock) de un producto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre + tipo       │  Stock actual + fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Fecha | Movimiento | Cantidad | Saldo            │
//	│         (primera fila: saldo inicial)                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Entradas / Salidas / Saldo final                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/coffee-stock-api/internal/application/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 57, Blue: 33}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 30, Green: 120, Blue: 60}
	colorOut     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

var _ inventory.StockCardPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa inventory.StockCardPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author aparece en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateStockCardPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockCardPDF(_ context.Context, card *inventory.StockCard) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex "+card.Product.Name, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(card))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(openingRow(card.OpeningBalance))
	for _, r := range movementRows(card.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(card))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y tipo (izq), stock actual y fecha de emisión (der).
func headerRow(card *inventory.StockCard) core.Row {
	p := card.Product
	return row.New(22).Add(
		col.New(7).Add(
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("ID %d | %s | Precio $%s", p.ID, p.Type, formatMoney(p.Price)), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
			}),
			text.New("Stock actual: "+strconv.FormatInt(p.Stock, 10), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Emitido: "+card.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		h("#", 1, align.Center),
		h("Fecha", 4, align.Left),
		h("Movimiento", 2, align.Center),
		h("Cantidad", 2, align.Right),
		h("Saldo", 3, align.Right),
	)
}

func openingRow(balance int64) core.Row {
	return row.New(6).Add(
		col.New(1),
		col.New(4).Add(text.New("Saldo inicial", props.Text{Size: 8, Style: fontstyle.Italic, Color: colorGray, Top: 1})),
		col.New(2),
		col.New(2),
		col.New(3).Add(text.New(strconv.FormatInt(balance, 10), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// movementRows: una fila por movimiento en orden cronológico.
func movementRows(lines []inventory.StockCardLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		color := colorIn
		qty := "+" + strconv.FormatInt(l.Quantity, 10)
		if l.Type == entity.TransactionOut {
			color = colorOut
			qty = "-" + strconv.FormatInt(l.Quantity, 10)
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(l.Timestamp.Format("02/01/2006 15:04:05"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Type.String(), props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
			col.New(2).Add(text.New(qty, props.Text{Size: 8, Align: align.Right, Top: 1, Color: color})),
			col.New(3).Add(text.New(strconv.FormatInt(l.Balance, 10), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: entradas, salidas y saldo final alineados a la derecha.
func totalsRow(card *inventory.StockCard) core.Row {
	var in, out int64
	for _, l := range card.Lines {
		if l.Type == entity.TransactionOut {
			out += l.Quantity
		} else {
			in += l.Quantity
		}
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(7),
		col.New(3).Add(
			label("Entradas:", 1),
			label("Salidas:", 7),
			label("Saldo final:", 13),
		),
		col.New(2).Add(
			value(strconv.FormatInt(in, 10), 1),
			value(strconv.FormatInt(out, 10), 7),
			value(strconv.FormatInt(card.Product.Stock, 10), 13),
		),
	)
}

// formatMoney inserta puntos de miles. Ej: 25000 → "25.000".
func formatMoney(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	l := len(s)
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
