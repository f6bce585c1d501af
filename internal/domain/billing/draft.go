package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/pkg/clock"
)

// IDProvider genera identificadores opacos para las líneas de factura.
type IDProvider func() string

// Días de plazo por defecto entre fecha de emisión y vencimiento.
const defaultDueDays = 30

// NewDraft crea una factura en blanco con los valores por defecto del
// formulario original: número derivado del timestamp actual, fecha de hoy,
// vencimiento a 30 días y exactamente una línea vacía (cantidad 1, tarifa 0).
// El reloj y el generador de IDs se inyectan para que los tests sean
// deterministas.
func NewDraft(clk clock.Clock, newID IDProvider) *entity.Invoice {
	now := clk.Now()

	inv := &entity.Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%d", now.UnixMilli()),
		InvoiceDate:   now.Format(time.DateOnly),
		DueDate:       now.AddDate(0, 0, defaultDueDays).Format(time.DateOnly),
		Items: []entity.LineItem{{
			ID:       newID(),
			Quantity: decimal.NewFromInt(1),
		}},
		CreatedAt: now,
	}
	Recalculate(inv)
	return inv
}
