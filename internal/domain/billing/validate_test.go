package billing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-studio/internal/domain/billing"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

func validInvoice() *entity.Invoice {
	return &entity.Invoice{
		Company:       entity.PartyDetails{Name: "Acme Corp"},
		BillTo:        entity.PartyDetails{Name: "Cliente S.A."},
		InvoiceNumber: "INV-1001",
		InvoiceDate:   "2025-01-15",
		DueDate:       "2025-02-14",
		Items: []entity.LineItem{
			{ID: "a", Description: "Consultoría", Quantity: dec("2"), Rate: dec("50")},
		},
		TaxRate: dec("8"),
	}
}

func fieldsOf(errs []billing.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidate_FacturaValida(t *testing.T) {
	assert.Empty(t, billing.Validate(validInvoice()), "una factura completa no debe reportar errores")
}

func TestValidate_CamposObligatorios(t *testing.T) {
	inv := validInvoice()
	inv.Company.Name = "  "
	inv.BillTo.Name = ""
	inv.InvoiceNumber = ""
	inv.Items[0].Description = ""

	fields := fieldsOf(billing.Validate(inv))

	assert.Contains(t, fields, "company.name")
	assert.Contains(t, fields, "bill_to.name")
	assert.Contains(t, fields, "invoice_number")
	assert.Contains(t, fields, "items[0].description")
}

func TestValidate_LimitesDeLongitud(t *testing.T) {
	inv := validInvoice()
	inv.Company.Name = strings.Repeat("x", 201)
	inv.BillTo.City = strings.Repeat("x", 101)
	inv.BillTo.ZipCode = strings.Repeat("1", 21)
	inv.Company.Phone = strings.Repeat("9", 21)
	inv.InvoiceNumber = strings.Repeat("N", 51)
	inv.Items[0].Description = strings.Repeat("d", 501)

	fields := fieldsOf(billing.Validate(inv))

	assert.Contains(t, fields, "company.name")
	assert.Contains(t, fields, "bill_to.city")
	assert.Contains(t, fields, "bill_to.zip_code")
	assert.Contains(t, fields, "company.phone")
	assert.Contains(t, fields, "invoice_number")
	assert.Contains(t, fields, "items[0].description")
}

func TestValidate_RangosNumericos(t *testing.T) {
	inv := validInvoice()
	inv.Items[0].Quantity = dec("0") // por debajo del mínimo 0.01
	inv.Items = append(inv.Items,
		entity.LineItem{ID: "b", Description: "ok", Quantity: dec("1000000"), Rate: dec("1")},
		entity.LineItem{ID: "c", Description: "ok", Quantity: dec("1"), Rate: dec("-5")},
		entity.LineItem{ID: "d", Description: "ok", Quantity: dec("1"), Rate: dec("100000000")},
	)
	inv.TaxRate = dec("100.01")

	fields := fieldsOf(billing.Validate(inv))

	assert.Contains(t, fields, "items[0].quantity")
	assert.Contains(t, fields, "items[1].quantity")
	assert.Contains(t, fields, "items[2].rate")
	assert.Contains(t, fields, "items[3].rate")
	assert.Contains(t, fields, "tax_rate")
}

func TestValidate_SinLineas(t *testing.T) {
	inv := validInvoice()
	inv.Items = nil

	fields := fieldsOf(billing.Validate(inv))
	assert.Contains(t, fields, "items")
}

// TestValidate_FechasSinRestriccionCruzada el vencimiento puede ser anterior
// a la emisión: retro-fechar está permitido a propósito.
func TestValidate_FechasSinRestriccionCruzada(t *testing.T) {
	inv := validInvoice()
	inv.InvoiceDate = "2025-06-01"
	inv.DueDate = "2025-01-01"

	assert.Empty(t, billing.Validate(inv))
}

// TestValidate_NoMuta validar nunca modifica el registro.
func TestValidate_NoMuta(t *testing.T) {
	inv := validInvoice()
	inv.Items[0].Quantity = dec("-1")
	before := *inv
	beforeItem := inv.Items[0]

	billing.Validate(inv)

	require.Equal(t, before.InvoiceNumber, inv.InvoiceNumber)
	require.True(t, beforeItem.Quantity.Equal(inv.Items[0].Quantity))
}

func TestValidate_EmailInvalido(t *testing.T) {
	inv := validInvoice()
	inv.Company.Email = "sin-arroba"

	fields := fieldsOf(billing.Validate(inv))
	assert.Contains(t, fields, "company.email")
}
