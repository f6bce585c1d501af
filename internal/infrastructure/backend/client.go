// Package backend implementa el colaborador de persistencia HTTP: el
// backend original (API estilo Django) que recibe la factura aplanada en
// snake_case por POST. El backend es opaco: solo importa el contrato del
// intercambio, cualquier respuesta no-2xx es fallo duro del envío.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/invoice-studio/internal/application/billing"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

var _ appbilling.InvoiceStore = (*Client)(nil)

// Client cliente del backend de facturas.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient construye el cliente. baseURL apunta a la raíz de la API
// (ej. http://localhost:8000/api).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// itemPayload línea aplanada para el backend. Los importes viajan como
// texto con dos decimales fijos (la misma forma canónica que se almacena),
// nunca como número normalizado.
type itemPayload struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        string          `json:"rate"`
	Amount      string          `json:"amount"`
}

// invoicePayload forma aplanada snake_case que consume el endpoint
// create-from-form del backend.
type invoicePayload struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address,omitempty"`
	CompanyCity    string `json:"company_city,omitempty"`
	CompanyState   string `json:"company_state,omitempty"`
	CompanyZipCode string `json:"company_zip_code,omitempty"`
	CompanyCountry string `json:"company_country,omitempty"`
	CompanyEmail   string `json:"company_email,omitempty"`
	CompanyPhone   string `json:"company_phone,omitempty"`

	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address,omitempty"`
	ClientCity    string `json:"client_city,omitempty"`
	ClientState   string `json:"client_state,omitempty"`
	ClientZipCode string `json:"client_zip_code,omitempty"`
	ClientCountry string `json:"client_country,omitempty"`
	ClientEmail   string `json:"client_email,omitempty"`
	ClientPhone   string `json:"client_phone,omitempty"`

	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       string          `json:"due_date"`
	Subtotal      string          `json:"subtotal"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     string          `json:"tax_amount"`
	Total         string          `json:"total"`
	Notes         string          `json:"notes,omitempty"`

	Items []itemPayload `json:"items"`
}

// Save envía la factura al backend. 2xx = persistida; cualquier otro
// status o error de red es fallo duro para esta petición.
func (c *Client) Save(ctx context.Context, inv *entity.Invoice) error {
	body, err := json.Marshal(toPayload(inv))
	if err != nil {
		return fmt.Errorf("serializar factura: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/invoices/create-from-form/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("construir petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("enviar factura al backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("backend respondió %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

func toPayload(inv *entity.Invoice) invoicePayload {
	p := invoicePayload{
		CompanyName:    inv.Company.Name,
		CompanyAddress: inv.Company.Address,
		CompanyCity:    inv.Company.City,
		CompanyState:   inv.Company.State,
		CompanyZipCode: inv.Company.ZipCode,
		CompanyCountry: inv.Company.Country,
		CompanyEmail:   inv.Company.Email,
		CompanyPhone:   inv.Company.Phone,

		ClientName:    inv.BillTo.Name,
		ClientAddress: inv.BillTo.Address,
		ClientCity:    inv.BillTo.City,
		ClientState:   inv.BillTo.State,
		ClientZipCode: inv.BillTo.ZipCode,
		ClientCountry: inv.BillTo.Country,
		ClientEmail:   inv.BillTo.Email,
		ClientPhone:   inv.BillTo.Phone,

		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal.StringFixed(2),
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount.StringFixed(2),
		Total:         inv.Total.StringFixed(2),
		Notes:         inv.Notes,

		Items: make([]itemPayload, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		p.Items = append(p.Items, itemPayload{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate.StringFixed(2),
			Amount:      it.Amount.StringFixed(2),
		})
	}
	return p
}
