package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	appbilling "github.com/jhoicas/invoice-studio/internal/application/billing"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

var _ appbilling.InvoiceStore = (*InvoiceStore)(nil)

// InvoiceStore persistencia directa en PostgreSQL (variante standalone,
// sin backend HTTP). Cabecera y líneas se insertan en una transacción:
// o se guarda la factura completa o no se guarda nada.
type InvoiceStore struct {
	pool *pgxpool.Pool
}

// NewInvoiceStore construye el adaptador. Esquema en schema.sql.
func NewInvoiceStore(pool *pgxpool.Pool) *InvoiceStore {
	return &InvoiceStore{pool: pool}
}

// Save persiste la factura completa.
func (s *InvoiceStore) Save(ctx context.Context, inv *entity.Invoice) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	id := uuid.New().String()
	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (
			id, invoice_number,
			company_name, company_address, company_city, company_state,
			company_zip_code, company_country, company_email, company_phone,
			client_name, client_address, client_city, client_state,
			client_zip_code, client_country, client_email, client_phone,
			invoice_date, due_date, notes,
			tax_rate, subtotal, tax_amount, total, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`,
		id, inv.InvoiceNumber,
		inv.Company.Name, nullIfEmpty(inv.Company.Address), nullIfEmpty(inv.Company.City),
		nullIfEmpty(inv.Company.State), nullIfEmpty(inv.Company.ZipCode),
		nullIfEmpty(inv.Company.Country), nullIfEmpty(inv.Company.Email), nullIfEmpty(inv.Company.Phone),
		inv.BillTo.Name, nullIfEmpty(inv.BillTo.Address), nullIfEmpty(inv.BillTo.City),
		nullIfEmpty(inv.BillTo.State), nullIfEmpty(inv.BillTo.ZipCode),
		nullIfEmpty(inv.BillTo.Country), nullIfEmpty(inv.BillTo.Email), nullIfEmpty(inv.BillTo.Phone),
		inv.InvoiceDate, inv.DueDate, nullIfEmpty(inv.Notes),
		inv.TaxRate, inv.Subtotal, inv.TaxAmount, inv.Total, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura duplicado %q: %w", inv.InvoiceNumber, err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	// position conserva el orden de inserción de las líneas (orden de la tabla).
	for i, it := range inv.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, position, description, quantity, rate, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, id, i, it.Description, it.Quantity, it.Rate, it.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
