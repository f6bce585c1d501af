package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-studio/internal/domain/document"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
)

// InvoiceStore colaborador de persistencia. Opaco para la aplicación: puede
// ser el backend HTTP o PostgreSQL directo según la variante de despliegue.
// Cualquier error se trata como fallo duro de esa petición.
type InvoiceStore interface {
	Save(ctx context.Context, inv *entity.Invoice) error
}

// HistoryEntry entrada del historial local: la factura completa más el
// instante de generación.
type HistoryEntry struct {
	Invoice     entity.Invoice `json:"invoice"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// HistoryStats estadísticas básicas derivadas del historial.
type HistoryStats struct {
	TotalInvoices int             `json:"total_invoices"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// HistoryStore log local append-only de facturas generadas (sin clave,
// lista secuencial).
type HistoryStore interface {
	Append(ctx context.Context, entry HistoryEntry) error
	List(ctx context.Context) ([]HistoryEntry, error)
	Stats(ctx context.Context) (HistoryStats, error)
}

// DocumentEncoder convierte el árbol del documento en el stream binario
// final (PDF). Si el render subyacente falla debe devolver error y ningún
// byte parcial.
type DocumentEncoder interface {
	Encode(ctx context.Context, doc *document.Document) ([]byte, error)
}

// Exporter escribe el stream codificado en un sink de archivos con el
// nombre sugerido (Invoice-<número>.pdf).
type Exporter interface {
	Export(ctx context.Context, filename string, data []byte) error
}
