package billing

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-studio/internal/domain"
	dombilling "github.com/jhoicas/invoice-studio/internal/domain/billing"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/pkg/clock"
)

// Editor mantiene el borrador de una factura durante la sesión de edición.
//
// Cada edición dispara exactamente un recálculo síncrono de los campos
// derivados (reemplazo explícito del efecto reactivo del formulario
// original), de modo que los invariantes monetarios se cumplen después de
// cada mutación y ediciones rápidas sucesivas terminan en last-write-wins
// sobre el registro.
type Editor struct {
	mu    sync.Mutex
	inv   *entity.Invoice
	newID dombilling.IDProvider
}

// NewEditor crea un editor con un borrador nuevo (una línea en blanco y
// valores por defecto derivados del reloj inyectado).
func NewEditor(clk clock.Clock, newID dombilling.IDProvider) *Editor {
	return &Editor{
		inv:   dombilling.NewDraft(clk, newID),
		newID: newID,
	}
}

// Invoice devuelve un snapshot del borrador actual.
func (e *Editor) Invoice() *entity.Invoice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inv.Snapshot()
}

// SetCompany reemplaza los datos del emisor.
func (e *Editor) SetCompany(p entity.PartyDetails) {
	e.mutate(func() { e.inv.Company = p })
}

// SetBillTo reemplaza los datos del receptor.
func (e *Editor) SetBillTo(p entity.PartyDetails) {
	e.mutate(func() { e.inv.BillTo = p })
}

// SetHeader actualiza número y fechas. No se valida que el vencimiento sea
// posterior a la emisión: retro-fechar está permitido.
func (e *Editor) SetHeader(number, invoiceDate, dueDate string) {
	e.mutate(func() {
		e.inv.InvoiceNumber = number
		e.inv.InvoiceDate = invoiceDate
		e.inv.DueDate = dueDate
	})
}

// SetNotes actualiza las notas libres.
func (e *Editor) SetNotes(notes string) {
	e.mutate(func() { e.inv.Notes = notes })
}

// SetTaxRate actualiza la tasa de impuesto y recalcula los totales.
func (e *Editor) SetTaxRate(rate decimal.Decimal) {
	e.mutate(func() { e.inv.TaxRate = rate })
}

// AddItem agrega una línea en blanco al final y devuelve su ID estable.
func (e *Editor) AddItem() string {
	id := e.newID()
	e.mutate(func() {
		e.inv.Items = append(e.inv.Items, entity.LineItem{
			ID:       id,
			Quantity: decimal.NewFromInt(1),
		})
	})
	return id
}

// UpdateItem edita descripción, cantidad y tarifa de la línea identificada
// por id. El importe derivado se recalcula en el mismo paso.
func (e *Editor) UpdateItem(id, description string, quantity, rate decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.inv.Items {
		if e.inv.Items[i].ID == id {
			e.inv.Items[i].Description = description
			e.inv.Items[i].Quantity = quantity
			e.inv.Items[i].Rate = rate
			dombilling.Recalculate(e.inv)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

// RemoveItem elimina la línea identificada por id. Quitar la última línea
// restante se rechaza con ErrLastItem sin mutar nada: la factura siempre
// conserva al menos una línea.
func (e *Editor) RemoveItem(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.inv.Items) <= 1 {
		return domain.ErrLastItem
	}
	for i := range e.inv.Items {
		if e.inv.Items[i].ID == id {
			e.inv.Items = append(e.inv.Items[:i], e.inv.Items[i+1:]...)
			dombilling.Recalculate(e.inv)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func (e *Editor) mutate(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn()
	dombilling.Recalculate(e.inv)
}
