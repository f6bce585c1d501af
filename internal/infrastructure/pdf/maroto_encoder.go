// Package pdf implementa el encoder del documento sobre Maroto v2.
//
// Layout de la página A4 (una sola página):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                         INVOICE                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FROM: emisor                │  INVOICE DETAILS: N° + fechas │
//	│  BILL TO: receptor                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Description | Qty | Rate | Amount                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Tax / TOTAL          (alineado derecha) │
//	│  NOTES (opcional)                                            │
//	└─────────────────────────────────────────────────────────────┘
//
// Limitación conocida: el documento se asume de una sola página. Si el
// contenido desborda el alto de la página el comportamiento queda en manos
// de Maroto (no hay paginación de la tabla de líneas en este módulo).
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/invoice-studio/internal/domain"
	"github.com/jhoicas/invoice-studio/internal/domain/document"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorDark  = &props.Color{Red: 51, Green: 51, Blue: 51}
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight = &props.Color{Red: 204, Green: 204, Blue: 204}
)

// ── Encoder ───────────────────────────────────────────────────────────────────

// MarotoEncoder implementa billing.DocumentEncoder usando Maroto v2.
type MarotoEncoder struct{}

// NewMarotoEncoder construye el encoder.
func NewMarotoEncoder() *MarotoEncoder { return &MarotoEncoder{} }

// Encode recorre los bloques del documento en orden y produce el PDF.
// Si el render subyacente falla devuelve domain.ErrGeneration envuelto y
// ningún byte parcial.
func (e *MarotoEncoder) Encode(_ context.Context, doc *document.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		Build()

	m := maroto.New(cfg)

	blocks := doc.Blocks
	for i := 0; i < len(blocks); i++ {
		switch b := blocks[i].(type) {
		case document.TitleBlock:
			m.AddRows(titleRow(b))
			m.AddRows(line.NewRow(2, props.Line{Color: colorLight, Thickness: 0.5}))

		case document.AddressBlock:
			// La primera dirección va emparejada con el bloque de
			// metadatos en una sola fila de dos columnas, como en el
			// documento original.
			if i+1 < len(blocks) {
				if meta, ok := blocks[i+1].(document.MetaBlock); ok {
					m.AddRows(pairedRow(b, meta))
					i++
					continue
				}
			}
			m.AddRows(addressRows(b)...)

		case document.MetaBlock:
			m.AddRows(metaRows(b)...)

		case document.TableBlock:
			m.AddRows(tableHeaderRow(b.Header))
			for _, r := range b.Rows {
				m.AddRows(tableDetailRow(r))
			}
			m.AddRows(line.NewRow(2, props.Line{Color: colorLight, Thickness: 0.3}))

		case document.TotalsBlock:
			for _, r := range b.Rows {
				m.AddRows(totalRow(r))
			}

		case document.NotesBlock:
			m.AddRows(line.NewRow(4))
			m.AddRows(notesRows(b)...)
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: render maroto: %v", domain.ErrGeneration, err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(b document.TitleBlock) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(b.Text, props.Text{
				Style: fontstyle.Bold, Size: 22, Align: align.Center,
				Color: colorDark, Top: 2,
			}),
		),
	)
}

// pairedRow: dirección del emisor (izq) y metadatos de la factura (der).
func pairedRow(addr document.AddressBlock, meta document.MetaBlock) core.Row {
	height := addressHeight(addr)
	if mh := 10 + float64(len(meta.Rows))*5; mh > height {
		height = mh
	}

	left := col.New(6).Add(addressTexts(addr)...)

	right := col.New(6).Add(
		text.New(meta.Label, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorDark, Top: 1,
		}),
	)
	for j, r := range meta.Rows {
		top := 8 + float64(j)*5
		right = right.Add(
			text.New(r.Label, props.Text{Size: 9, Top: top, Color: colorGray}),
			text.New(r.Value, props.Text{Size: 9, Top: top, Align: align.Right, Right: 2}),
		)
	}

	return row.New(height).Add(left, right)
}

func addressRows(b document.AddressBlock) []core.Row {
	return []core.Row{
		row.New(addressHeight(b)).Add(col.New(12).Add(addressTexts(b)...)),
	}
}

// addressTexts apila etiqueta, nombre y líneas no vacías con offsets fijos.
func addressTexts(b document.AddressBlock) []core.Component {
	comps := []core.Component{
		text.New(b.Label, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorDark, Top: 1,
		}),
		text.New(b.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 8}),
	}
	for j, ln := range b.Lines {
		comps = append(comps, text.New(ln, props.Text{
			Size: 9, Top: 13 + float64(j)*4.5, Color: colorGray,
		}))
	}
	return comps
}

func addressHeight(b document.AddressBlock) float64 {
	return 15 + float64(len(b.Lines))*4.5
}

func metaRows(b document.MetaBlock) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(b.Label, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorDark, Top: 1,
			}),
		)),
	}
	for _, r := range b.Rows {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(r.Label, props.Text{Size: 9, Color: colorGray})),
			col.New(9).Add(text.New(r.Value, props.Text{Size: 9})),
		))
	}
	return rows
}

func tableHeaderRow(h document.TableRow) core.Row {
	cell := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a,
			Color: colorDark, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(9).Add(
		cell(h.Description, 6, align.Left),
		cell(h.Quantity, 2, align.Center),
		cell(h.Rate, 2, align.Right),
		cell(h.Amount, 2, align.Right),
	)
}

func tableDetailRow(r document.TableRow) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(r.Description, props.Text{
			Size: 9, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New(r.Quantity, props.Text{
			Size: 9, Align: align.Center, Top: 1,
		})),
		col.New(2).Add(text.New(r.Rate, props.Text{
			Size: 9, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New(r.Amount, props.Text{
			Size: 9, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// totalRow: una fila de totales alineada a la derecha. La fila final (el
// total) va en negrita y con más cuerpo, como importe definitivo.
func totalRow(r document.TotalRow) core.Row {
	size := 9.0
	style := fontstyle.Normal
	height := 6.0
	if r.Final {
		size = 11
		style = fontstyle.Bold
		height = 9
	}
	return row.New(height).Add(
		col.New(6),
		col.New(3).Add(text.New(r.Label, props.Text{
			Style: style, Size: size, Align: align.Right, Right: 2, Color: colorDark,
		})),
		col.New(3).Add(text.New(r.Value, props.Text{
			Style: style, Size: size, Align: align.Right, Right: 1, Color: colorDark,
		})),
	)
}

func notesRows(b document.NotesBlock) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(b.Label, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorDark, Top: 1,
			}),
		)),
		row.New(12).Add(col.New(12).Add(
			text.New(b.Text, props.Text{Size: 9, Color: colorGray, Top: 1}),
		)),
	}
}
