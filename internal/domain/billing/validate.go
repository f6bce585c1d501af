package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

// Límites de los campos del formulario.
var (
	minQuantity = decimal.RequireFromString("0.01")
	maxQuantity = decimal.RequireFromString("999999.99")
	maxRate     = decimal.RequireFromString("99999999.99")
)

// FieldError es una violación de restricción de un campo concreto.
// Se reporta junto al campo ofensor; bloquea la generación pero nunca
// modifica el estado de la factura.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implementa error con el formato campo: mensaje.
func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate revisa todas las restricciones por campo de la factura y
// devuelve la lista completa de violaciones (vacía si el registro es válido).
// No muta el registro.
func Validate(inv *entity.Invoice) []FieldError {
	var errs []FieldError

	errs = append(errs, validateParty("company", inv.Company)...)
	errs = append(errs, validateParty("bill_to", inv.BillTo)...)

	switch {
	case strings.TrimSpace(inv.InvoiceNumber) == "":
		errs = append(errs, FieldError{"invoice_number", "el número de factura es obligatorio"})
	case len(inv.InvoiceNumber) > 50:
		errs = append(errs, FieldError{"invoice_number", "el número de factura no puede exceder 50 caracteres"})
	}

	if len(inv.Items) == 0 {
		errs = append(errs, FieldError{"items", "la factura debe tener al menos una línea"})
	}
	for i := range inv.Items {
		errs = append(errs, validateItem(i, &inv.Items[i])...)
	}

	if inv.TaxRate.IsNegative() {
		errs = append(errs, FieldError{"tax_rate", "la tasa de impuesto no puede ser negativa"})
	} else if inv.TaxRate.GreaterThan(hundred) {
		errs = append(errs, FieldError{"tax_rate", "la tasa de impuesto no puede exceder 100%"})
	}

	return errs
}

func validateParty(prefix string, p entity.PartyDetails) []FieldError {
	var errs []FieldError

	field := func(name string) string { return prefix + "." + name }

	switch {
	case strings.TrimSpace(p.Name) == "":
		errs = append(errs, FieldError{field("name"), "el nombre es obligatorio"})
	case len(p.Name) > 200:
		errs = append(errs, FieldError{field("name"), "el nombre no puede exceder 200 caracteres"})
	}
	if len(p.City) > 100 {
		errs = append(errs, FieldError{field("city"), "la ciudad no puede exceder 100 caracteres"})
	}
	if len(p.State) > 100 {
		errs = append(errs, FieldError{field("state"), "la región no puede exceder 100 caracteres"})
	}
	if len(p.ZipCode) > 20 {
		errs = append(errs, FieldError{field("zip_code"), "el código postal no puede exceder 20 caracteres"})
	}
	if len(p.Country) > 100 {
		errs = append(errs, FieldError{field("country"), "el país no puede exceder 100 caracteres"})
	}
	if len(p.Phone) > 20 {
		errs = append(errs, FieldError{field("phone"), "el teléfono no puede exceder 20 caracteres"})
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		errs = append(errs, FieldError{field("email"), "el email no es válido"})
	}

	return errs
}

func validateItem(idx int, it *entity.LineItem) []FieldError {
	var errs []FieldError

	field := func(name string) string { return fmt.Sprintf("items[%d].%s", idx, name) }

	switch {
	case strings.TrimSpace(it.Description) == "":
		errs = append(errs, FieldError{field("description"), "la descripción es obligatoria"})
	case len(it.Description) > 500:
		errs = append(errs, FieldError{field("description"), "la descripción no puede exceder 500 caracteres"})
	}

	if it.Quantity.LessThan(minQuantity) {
		errs = append(errs, FieldError{field("quantity"), "la cantidad debe ser mayor que 0"})
	} else if it.Quantity.GreaterThan(maxQuantity) {
		errs = append(errs, FieldError{field("quantity"), "la cantidad no puede exceder 999,999.99"})
	}

	if it.Rate.IsNegative() {
		errs = append(errs, FieldError{field("rate"), "la tarifa no puede ser negativa"})
	} else if it.Rate.GreaterThan(maxRate) {
		errs = append(errs, FieldError{field("rate"), "la tarifa no puede exceder 99,999,999.99"})
	}

	return errs
}
