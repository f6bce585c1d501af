package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

// PartyDTO datos de una parte (emisor o receptor) en la API.
type PartyDTO struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// LineItemRequest línea de factura en el body de entrada. Amount no se
// acepta del cliente: es un campo derivado que siempre recalcula el servidor.
type LineItemRequest struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
}

// InvoiceRequest body para POST /api/invoices y /api/invoices/preview.
type InvoiceRequest struct {
	Company       PartyDTO          `json:"company"`
	BillTo        PartyDTO          `json:"bill_to"`
	InvoiceNumber string            `json:"invoice_number"`
	InvoiceDate   string            `json:"invoice_date"`
	DueDate       string            `json:"due_date"`
	Items         []LineItemRequest `json:"items"`
	Notes         string            `json:"notes,omitempty"`
	TaxRate       decimal.Decimal   `json:"tax_rate"`
}

// LineItemResponse línea con su importe derivado.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura con todos los campos derivados recalculados.
type InvoiceResponse struct {
	Company       PartyDTO           `json:"company"`
	BillTo        PartyDTO           `json:"bill_to"`
	InvoiceNumber string             `json:"invoice_number"`
	InvoiceDate   string             `json:"invoice_date"`
	DueDate       string             `json:"due_date"`
	Items         []LineItemResponse `json:"items"`
	Notes         string             `json:"notes,omitempty"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	Total         decimal.Decimal    `json:"total"`
}

// HistoryEntryResponse entrada del historial de facturas generadas.
type HistoryEntryResponse struct {
	Invoice     InvoiceResponse `json:"invoice"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// FromHistoryEntry arma una entrada de historial lista para la API.
func FromHistoryEntry(inv *entity.Invoice, generatedAt time.Time) HistoryEntryResponse {
	return HistoryEntryResponse{Invoice: FromEntity(inv), GeneratedAt: generatedAt}
}

// ToEntity convierte el request en la entidad de dominio. Las líneas sin ID
// reciben uno nuevo con newID (clave opaca estable para la sesión).
func (in InvoiceRequest) ToEntity(newID func() string) *entity.Invoice {
	inv := &entity.Invoice{
		Company:       partyToEntity(in.Company),
		BillTo:        partyToEntity(in.BillTo),
		InvoiceNumber: in.InvoiceNumber,
		InvoiceDate:   in.InvoiceDate,
		DueDate:       in.DueDate,
		Notes:         in.Notes,
		TaxRate:       in.TaxRate,
		Items:         make([]entity.LineItem, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		id := it.ID
		if id == "" {
			id = newID()
		}
		inv.Items = append(inv.Items, entity.LineItem{
			ID:          id,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}
	return inv
}

// FromEntity arma la respuesta completa a partir de la entidad.
func FromEntity(inv *entity.Invoice) InvoiceResponse {
	out := InvoiceResponse{
		Company:       partyFromEntity(inv.Company),
		BillTo:        partyFromEntity(inv.BillTo),
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		TaxRate:       inv.TaxRate,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Items:         make([]LineItemResponse, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, LineItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount,
		})
	}
	return out
}

func partyToEntity(p PartyDTO) entity.PartyDetails {
	return entity.PartyDetails{
		Name:    p.Name,
		Address: p.Address,
		City:    p.City,
		State:   p.State,
		ZipCode: p.ZipCode,
		Country: p.Country,
		Email:   p.Email,
		Phone:   p.Phone,
	}
}

func partyFromEntity(p entity.PartyDetails) PartyDTO {
	return PartyDTO{
		Name:    p.Name,
		Address: p.Address,
		City:    p.City,
		State:   p.State,
		ZipCode: p.ZipCode,
		Country: p.Country,
		Email:   p.Email,
		Phone:   p.Phone,
	}
}
