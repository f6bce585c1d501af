package http

import (
	"github.com/gofiber/fiber/v2"

	appbilling "github.com/jhoicas/invoice-studio/internal/application/billing"
	dombilling "github.com/jhoicas/invoice-studio/internal/domain/billing"
	"github.com/jhoicas/invoice-studio/pkg/clock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Generate *appbilling.GenerateInvoiceUseCase
	Clock    clock.Clock
	NewID    dombilling.IDProvider
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	invoices := api.Group("/invoices")
	handler := NewInvoiceHandler(deps.Generate, deps.Clock, deps.NewID)
	invoices.Post("/", handler.Generate)
	invoices.Post("/preview", handler.Preview)
	invoices.Get("/draft", handler.Draft)

	// Historial: solo si la variante de despliegue lo configura.
	if deps.Generate.History() != nil {
		invoices.Get("/history", handler.History)
		invoices.Get("/stats", handler.Stats)
	}
}
