package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa el estado completo de una factura en edición.
//
// Las fechas se guardan como texto en formato ISO (2006-01-02) tal como
// llegan del formulario; una fecha mal formada no invalida el registro, el
// builder del documento la emite tal cual. No hay restricción entre DueDate
// e InvoiceDate (se permite retro-fechar).
//
// Subtotal, TaxAmount y Total son campos derivados: solo los escribe el
// recálculo de billing, nunca el usuario.
type Invoice struct {
	Company       PartyDetails
	BillTo        PartyDetails
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	Items         []LineItem
	Notes         string
	TaxRate       decimal.Decimal
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	CreatedAt     time.Time
}

// Snapshot devuelve una copia profunda de la factura.
// El documento se arma siempre sobre una copia, de modo que ediciones
// posteriores al envío no puedan corromper el documento en construcción.
func (inv *Invoice) Snapshot() *Invoice {
	cp := *inv
	cp.Items = make([]LineItem, len(inv.Items))
	copy(cp.Items, inv.Items)
	return &cp
}
