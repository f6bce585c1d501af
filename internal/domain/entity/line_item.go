package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea de la factura.
// ID es una clave opaca y estable: se genera una sola vez al crear la línea,
// no cambia al editarla y nunca se reutiliza tras un borrado en la misma
// sesión. No tiene significado de negocio.
// Amount es un campo derivado: siempre round2(Quantity * Rate), nunca
// editable de forma independiente.
type LineItem struct {
	ID          string
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}
