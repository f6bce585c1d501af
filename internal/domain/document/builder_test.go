package document_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-studio/internal/domain/billing"
	"github.com/jhoicas/invoice-studio/internal/domain/document"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleInvoice() *entity.Invoice {
	inv := &entity.Invoice{
		Company: entity.PartyDetails{
			Name:    "Acme Corp",
			Address: "123 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
			Country: "USA",
			Email:   "billing@acme.test",
			Phone:   "555-0100",
		},
		BillTo: entity.PartyDetails{
			Name: "Cliente S.A.",
			// solo nombre: el resto de campos opcionales vacíos
		},
		InvoiceNumber: "INV-1001",
		InvoiceDate:   "2025-01-15",
		DueDate:       "2025-02-14",
		Items: []entity.LineItem{
			{ID: "a", Description: "Consultoría", Quantity: dec("2"), Rate: dec("50.00")},
			{ID: "b", Description: "Soporte", Quantity: dec("1"), Rate: dec("25.50")},
		},
		TaxRate: dec("8"),
		Notes:   "Pago a 30 días.",
	}
	billing.Recalculate(inv)
	return inv
}

func findTotals(t *testing.T, doc *document.Document) document.TotalsBlock {
	t.Helper()
	for _, b := range doc.Blocks {
		if tb, ok := b.(document.TotalsBlock); ok {
			return tb
		}
	}
	t.Fatal("el documento no tiene bloque de totales")
	return document.TotalsBlock{}
}

// TestBuild_OrdenDeBloques el árbol sale siempre en el mismo orden:
// título, emisor, metadatos, receptor, tabla, totales, notas.
func TestBuild_OrdenDeBloques(t *testing.T) {
	doc := document.Build(sampleInvoice())

	require.Len(t, doc.Blocks, 7)
	assert.IsType(t, document.TitleBlock{}, doc.Blocks[0])
	assert.IsType(t, document.AddressBlock{}, doc.Blocks[1])
	assert.IsType(t, document.MetaBlock{}, doc.Blocks[2])
	assert.IsType(t, document.AddressBlock{}, doc.Blocks[3])
	assert.IsType(t, document.TableBlock{}, doc.Blocks[4])
	assert.IsType(t, document.TotalsBlock{}, doc.Blocks[5])
	assert.IsType(t, document.NotesBlock{}, doc.Blocks[6])

	assert.Equal(t, "INVOICE", doc.Blocks[0].(document.TitleBlock).Text)
}

// TestBuild_DireccionOmiteCamposVacios los campos opcionales vacíos no
// generan líneas en blanco en el bloque de dirección.
func TestBuild_DireccionOmiteCamposVacios(t *testing.T) {
	doc := document.Build(sampleInvoice())

	from := doc.Blocks[1].(document.AddressBlock)
	assert.Equal(t, "From", from.Label)
	assert.Equal(t, "Acme Corp", from.Name)
	assert.Equal(t, []string{
		"123 Main St", "Springfield, IL", "62701", "USA",
		"billing@acme.test", "555-0100",
	}, from.Lines)

	billTo := doc.Blocks[3].(document.AddressBlock)
	assert.Equal(t, "Bill To", billTo.Label)
	assert.Equal(t, "Cliente S.A.", billTo.Name)
	assert.Empty(t, billTo.Lines, "sin campos opcionales no hay líneas extra")
}

// TestBuild_TablaConservaElOrden una fila por línea, en orden de inserción,
// con celdas ya formateadas.
func TestBuild_TablaConservaElOrden(t *testing.T) {
	doc := document.Build(sampleInvoice())

	tbl := doc.Blocks[4].(document.TableBlock)
	assert.Equal(t, "Description", tbl.Header.Description)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, document.TableRow{
		Description: "Consultoría", Quantity: "2", Rate: "$50.00", Amount: "$100.00",
	}, tbl.Rows[0])
	assert.Equal(t, document.TableRow{
		Description: "Soporte", Quantity: "1", Rate: "$25.50", Amount: "$25.50",
	}, tbl.Rows[1])
}

// TestBuild_TotalesConImpuesto con tasa > 0 hay exactamente tres filas y la
// última va marcada como importe final.
func TestBuild_TotalesConImpuesto(t *testing.T) {
	totals := findTotals(t, document.Build(sampleInvoice()))

	require.Len(t, totals.Rows, 3)
	assert.Equal(t, document.TotalRow{Label: "Subtotal:", Value: "$125.50"}, totals.Rows[0])
	assert.Equal(t, document.TotalRow{Label: "Tax (8%):", Value: "$10.04"}, totals.Rows[1])
	assert.Equal(t, document.TotalRow{Label: "Total:", Value: "$135.54", Final: true}, totals.Rows[2])
}

// TestBuild_SinImpuestoNoHayFilaDeTax con tasa cero la fila de impuesto se
// omite; con 0.01 ya aparece.
func TestBuild_SinImpuestoNoHayFilaDeTax(t *testing.T) {
	inv := sampleInvoice()
	inv.TaxRate = decimal.Zero
	billing.Recalculate(inv)

	totals := findTotals(t, document.Build(inv))
	require.Len(t, totals.Rows, 2)
	assert.Equal(t, "Subtotal:", totals.Rows[0].Label)
	assert.Equal(t, "Total:", totals.Rows[1].Label)

	inv.TaxRate = dec("0.01")
	billing.Recalculate(inv)
	totals = findTotals(t, document.Build(inv))
	require.Len(t, totals.Rows, 3, "cualquier tasa > 0 muestra la fila de impuesto")
	assert.Equal(t, "Tax (0.01%):", totals.Rows[1].Label)
}

// TestBuild_NotasOpcionales sin notas no hay bloque; con notas hay
// exactamente uno con el texto literal.
func TestBuild_NotasOpcionales(t *testing.T) {
	inv := sampleInvoice()
	inv.Notes = ""
	doc := document.Build(inv)
	for _, b := range doc.Blocks {
		_, ok := b.(document.NotesBlock)
		assert.False(t, ok, "sin notas no debe haber bloque de notas")
	}

	inv.Notes = "Gracias por su compra."
	doc = document.Build(inv)
	var notes []document.NotesBlock
	for _, b := range doc.Blocks {
		if nb, ok := b.(document.NotesBlock); ok {
			notes = append(notes, nb)
		}
	}
	require.Len(t, notes, 1)
	assert.Equal(t, "Gracias por su compra.", notes[0].Text)
}

// TestBuild_FechaMalFormadaSeEmiteTalCual una fecha que no parsea degrada a
// texto crudo en lugar de tumbar la generación.
func TestBuild_FechaMalFormadaSeEmiteTalCual(t *testing.T) {
	inv := sampleInvoice()
	inv.InvoiceDate = "no-es-fecha"

	doc := document.Build(inv)
	meta := doc.Blocks[2].(document.MetaBlock)

	require.Len(t, meta.Rows, 3)
	assert.Equal(t, "no-es-fecha", meta.Rows[1].Value)
	assert.Equal(t, "February 14, 2025", meta.Rows[2].Value, "las fechas válidas sí se formatean")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "January 15, 2025", document.FormatDate("2025-01-15"))
	assert.Equal(t, "March 05, 2025", document.FormatDate("2025-03-05"), "día con cero a la izquierda")
	assert.Equal(t, "2025/01/15", document.FormatDate("2025/01/15"), "formato no ISO se devuelve crudo")
	assert.Equal(t, "", document.FormatDate(""))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", document.FormatCurrency(decimal.Zero))
	assert.Equal(t, "$1234567.80", document.FormatCurrency(dec("1234567.8")), "sin separador de miles")
	assert.Equal(t, "$-12.50", document.FormatCurrency(dec("-12.5")))
}

// TestBuild_DeterministaYSinMutacion mismo registro, mismo árbol; y el
// registro de entrada queda intacto.
func TestBuild_DeterministaYSinMutacion(t *testing.T) {
	inv := sampleInvoice()
	before := inv.Snapshot()

	a := document.Build(inv)
	b := document.Build(inv)

	assert.Equal(t, a, b, "el builder debe ser determinista")
	assert.Equal(t, before, inv.Snapshot(), "el builder no debe mutar la factura")
}
