package document

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

// Formato largo de fecha del documento (ej. "January 02, 2025").
const dateLayout = "January 02, 2006"

// Build mapea una factura finalizada al árbol de bloques del documento.
//
// Es un mapeo puro y determinista: no muta la factura, no hace I/O y el
// mismo registro produce siempre el mismo árbol. El caller debe pasar un
// snapshot (entity.Invoice.Snapshot) para que ediciones concurrentes no
// afecten al documento en construcción.
func Build(inv *entity.Invoice) *Document {
	doc := &Document{}

	doc.Blocks = append(doc.Blocks, TitleBlock{Text: "INVOICE"})
	doc.Blocks = append(doc.Blocks, addressBlock("From", inv.Company))
	doc.Blocks = append(doc.Blocks, MetaBlock{
		Label: "Invoice Details",
		Rows: []MetaRow{
			{Label: "Invoice Number:", Value: inv.InvoiceNumber},
			{Label: "Invoice Date:", Value: FormatDate(inv.InvoiceDate)},
			{Label: "Due Date:", Value: FormatDate(inv.DueDate)},
		},
	})
	doc.Blocks = append(doc.Blocks, addressBlock("Bill To", inv.BillTo))
	doc.Blocks = append(doc.Blocks, itemsTable(inv.Items))
	doc.Blocks = append(doc.Blocks, totalsBlock(inv))

	if inv.Notes != "" {
		doc.Blocks = append(doc.Blocks, NotesBlock{Label: "Notes", Text: inv.Notes})
	}

	return doc
}

// addressBlock arma el bloque de dirección con solo los campos no vacíos:
// dirección, "ciudad, región", código postal, país, email y teléfono.
func addressBlock(label string, p entity.PartyDetails) AddressBlock {
	blk := AddressBlock{Label: label, Name: p.Name}

	cityState := p.City
	if p.State != "" {
		if cityState != "" {
			cityState += ", "
		}
		cityState += p.State
	}

	for _, line := range []string{p.Address, cityState, p.ZipCode, p.Country, p.Email, p.Phone} {
		if line != "" {
			blk.Lines = append(blk.Lines, line)
		}
	}
	return blk
}

func itemsTable(items []entity.LineItem) TableBlock {
	tbl := TableBlock{
		Header: TableRow{
			Description: "Description",
			Quantity:    "Qty",
			Rate:        "Rate",
			Amount:      "Amount",
		},
		Rows: make([]TableRow, 0, len(items)),
	}
	for _, it := range items {
		tbl.Rows = append(tbl.Rows, TableRow{
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			Rate:        FormatCurrency(it.Rate),
			Amount:      FormatCurrency(it.Amount),
		})
	}
	return tbl
}

func totalsBlock(inv *entity.Invoice) TotalsBlock {
	rows := []TotalRow{
		{Label: "Subtotal:", Value: FormatCurrency(inv.Subtotal)},
	}
	if inv.TaxRate.GreaterThan(decimal.Zero) {
		rows = append(rows, TotalRow{
			Label: "Tax (" + inv.TaxRate.String() + "%):",
			Value: FormatCurrency(inv.TaxAmount),
		})
	}
	rows = append(rows, TotalRow{Label: "Total:", Value: FormatCurrency(inv.Total), Final: true})
	return TotalsBlock{Rows: rows}
}

// FormatCurrency renderiza un importe con símbolo, dos decimales fijos y sin
// separador de miles: "$1234.50".
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatDate convierte una fecha ISO (2006-01-02) al formato largo del
// documento. Si el texto no parsea como fecha válida se devuelve tal cual:
// un dato malo degrada la presentación, nunca tumba la generación.
func FormatDate(s string) string {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}
	return t.Format(dateLayout)
}
