package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	appbilling "github.com/jhoicas/invoice-studio/internal/application/billing"
	"github.com/jhoicas/invoice-studio/internal/application/dto"
	"github.com/jhoicas/invoice-studio/internal/domain"
	dombilling "github.com/jhoicas/invoice-studio/internal/domain/billing"
	"github.com/jhoicas/invoice-studio/pkg/clock"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	generate *appbilling.GenerateInvoiceUseCase
	clk      clock.Clock
	newID    dombilling.IDProvider
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(generate *appbilling.GenerateInvoiceUseCase, clk clock.Clock, newID dombilling.IDProvider) *InvoiceHandler {
	return &InvoiceHandler{generate: generate, clk: clk, newID: newID}
}

// Draft devuelve una factura en blanco con los valores por defecto:
// número derivado del timestamp, fecha de hoy, vencimiento a 30 días y una
// línea vacía.
// GET /api/invoices/draft
func (h *InvoiceHandler) Draft(c *fiber.Ctx) error {
	return c.JSON(dto.FromEntity(dombilling.NewDraft(h.clk, h.newID)))
}

// Preview recalcula los campos derivados del payload y los devuelve sin
// validar ni persistir: el servidor es la fuente de verdad de los totales
// mientras el usuario edita.
// POST /api/invoices/preview
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	inv := in.ToEntity(h.newID)
	dombilling.Recalculate(inv)
	return c.JSON(dto.FromEntity(inv))
}

// Generate valida la factura, la persiste según la variante configurada y
// devuelve el PDF como adjunto. Los tres tipos de fallo del pipeline se
// señalan con códigos distintos: validación (400), persistencia (502) y
// generación (500).
// POST /api/invoices
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.generate.Generate(c.Context(), in.ToEntity(h.newID))
	if err != nil {
		var vErr *appbilling.ValidationError
		switch {
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Code: "VALIDATION", Fields: vErr.Fields})
		case errors.Is(err, domain.ErrGenerationInFlight):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_FLIGHT", Message: "ya hay una generación en curso, reintente en un momento"})
		case errors.Is(err, domain.ErrPersistence):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: err.Error()})
		case errors.Is(err, domain.ErrGeneration):
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "GENERATION", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.FileName+`"`)
	return c.Send(result.PDF)
}

// History devuelve el historial local de facturas generadas.
// GET /api/invoices/history
func (h *InvoiceHandler) History(c *fiber.Ctx) error {
	entries, err := h.generate.History().List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromHistoryEntry(&e.Invoice, e.GeneratedAt))
	}
	return c.JSON(out)
}

// Stats devuelve estadísticas básicas derivadas del historial.
// GET /api/invoices/stats
func (h *InvoiceHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.generate.History().Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stats)
}
