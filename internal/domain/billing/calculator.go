// Package billing contiene la lógica pura de facturación: recálculo de los
// campos monetarios derivados y validación de campos.
//
// Política de redondeo canónica: toda cifra monetaria se redondea a dos
// decimales en el punto donde se deriva (importe de línea, subtotal,
// impuesto, total), con redondeo half-away-from-zero de shopspring/decimal.
// Nunca se acumulan floats binarios, así el total mostrado y el almacenado
// no pueden divergir por centavos.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Recalculate recalcula en sitio todos los campos derivados de la factura:
// el importe de cada línea, el subtotal, el impuesto y el total.
//
// Es una función total e idempotente: nunca falla para un registro bien
// tipado (cantidad o tarifa en cero se tratan como cero, no como error) y
// aplicarla dos veces sobre el mismo registro produce exactamente los
// mismos valores.
func Recalculate(inv *entity.Invoice) {
	subtotal := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Amount = LineAmount(inv.Items[i].Quantity, inv.Items[i].Rate)
		subtotal = subtotal.Add(inv.Items[i].Amount)
	}

	inv.Subtotal = subtotal.Round(2)
	inv.TaxAmount = inv.Subtotal.Mul(inv.TaxRate).Div(hundred).Round(2)
	inv.Total = inv.Subtotal.Add(inv.TaxAmount).Round(2)
}

// LineAmount deriva el importe de una línea: round2(cantidad * tarifa).
func LineAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate).Round(2)
}
