package billing_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/invoice-studio/internal/application/billing"
	"github.com/jhoicas/invoice-studio/internal/domain"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/pkg/clock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var testClock = clock.Fixed{T: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}

func newTestEditor() *appbilling.Editor {
	seq := 0
	return appbilling.NewEditor(testClock, func() string {
		seq++
		return fmt.Sprintf("item-%d", seq)
	})
}

// TestEditor_RecalculaEnCadaEdicion cada mutación deja los derivados
// consistentes sin pasos extra.
func TestEditor_RecalculaEnCadaEdicion(t *testing.T) {
	ed := newTestEditor()

	first := ed.Invoice().Items[0].ID
	require.NoError(t, ed.UpdateItem(first, "Consultoría", dec("2"), dec("50")))

	inv := ed.Invoice()
	assert.True(t, dec("100.00").Equal(inv.Subtotal), "subtotal tras editar la línea: %s", inv.Subtotal)

	ed.SetTaxRate(dec("8"))
	inv = ed.Invoice()
	assert.True(t, dec("8.00").Equal(inv.TaxAmount), "impuesto tras cambiar la tasa: %s", inv.TaxAmount)
	assert.True(t, dec("108.00").Equal(inv.Total))
}

// TestEditor_IDsEstables el ID de una línea no cambia al editarla y las
// líneas nuevas reciben IDs nunca vistos.
func TestEditor_IDsEstables(t *testing.T) {
	ed := newTestEditor()

	first := ed.Invoice().Items[0].ID
	second := ed.AddItem()
	assert.NotEqual(t, first, second)

	require.NoError(t, ed.UpdateItem(first, "Editada", dec("1"), dec("1")))
	assert.Equal(t, first, ed.Invoice().Items[0].ID, "editar no cambia el ID")

	require.NoError(t, ed.RemoveItem(second))
	third := ed.AddItem()
	assert.NotEqual(t, second, third, "los IDs no se reutilizan tras un borrado")
}

// TestEditor_UltimaLineaNoSeBorra quitar la única línea restante es un
// no-op rechazado: no muta nada y la factura conserva al menos una línea.
func TestEditor_UltimaLineaNoSeBorra(t *testing.T) {
	ed := newTestEditor()

	id := ed.Invoice().Items[0].ID
	require.NoError(t, ed.UpdateItem(id, "Única", dec("3"), dec("10")))
	before := ed.Invoice()

	err := ed.RemoveItem(id)
	assert.ErrorIs(t, err, domain.ErrLastItem)

	after := ed.Invoice()
	require.Len(t, after.Items, 1)
	assert.Equal(t, before, after, "el rechazo no debe mutar el estado")
}

func TestEditor_RemoveItemInexistente(t *testing.T) {
	ed := newTestEditor()
	ed.AddItem()

	err := ed.RemoveItem("no-existe")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	err = ed.UpdateItem("no-existe", "x", dec("1"), dec("1"))
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

// TestEditor_RemoveRecalcula quitar una línea descuenta su importe del
// subtotal en el mismo paso.
func TestEditor_RemoveRecalcula(t *testing.T) {
	ed := newTestEditor()

	first := ed.Invoice().Items[0].ID
	require.NoError(t, ed.UpdateItem(first, "A", dec("1"), dec("40")))
	second := ed.AddItem()
	require.NoError(t, ed.UpdateItem(second, "B", dec("1"), dec("60")))
	require.True(t, dec("100.00").Equal(ed.Invoice().Subtotal))

	require.NoError(t, ed.RemoveItem(second))
	assert.True(t, dec("40.00").Equal(ed.Invoice().Subtotal))
}

// TestEditor_InvoiceDevuelveSnapshot mutar lo devuelto no afecta al borrador.
func TestEditor_InvoiceDevuelveSnapshot(t *testing.T) {
	ed := newTestEditor()

	snap := ed.Invoice()
	snap.Items[0].Description = "hackeada"
	snap.Company = entity.PartyDetails{Name: "Otra"}

	inv := ed.Invoice()
	assert.Empty(t, inv.Items[0].Description)
	assert.Empty(t, inv.Company.Name)
}

func TestEditor_SetHeaderYNotas(t *testing.T) {
	ed := newTestEditor()

	ed.SetHeader("INV-X", "2025-05-01", "2025-04-01") // vencimiento anterior: permitido
	ed.SetNotes("Pago contra entrega")
	ed.SetCompany(entity.PartyDetails{Name: "Acme"})
	ed.SetBillTo(entity.PartyDetails{Name: "Cliente"})

	inv := ed.Invoice()
	assert.Equal(t, "INV-X", inv.InvoiceNumber)
	assert.Equal(t, "2025-05-01", inv.InvoiceDate)
	assert.Equal(t, "2025-04-01", inv.DueDate)
	assert.Equal(t, "Pago contra entrega", inv.Notes)
	assert.Equal(t, "Acme", inv.Company.Name)
	assert.Equal(t, "Cliente", inv.BillTo.Name)
}
