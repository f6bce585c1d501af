package billing

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jhoicas/invoice-studio/internal/domain"
	dombilling "github.com/jhoicas/invoice-studio/internal/domain/billing"
	"github.com/jhoicas/invoice-studio/internal/domain/document"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/pkg/clock"
	"github.com/jhoicas/invoice-studio/pkg/logger"
)

// ValidationError agrupa las violaciones por campo de una factura.
// Envuelve domain.ErrInvalidInput para que los callers puedan clasificar
// con errors.Is.
type ValidationError struct {
	Fields []dombilling.FieldError
}

// Error implementa error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("factura inválida: %d campos con errores", len(e.Fields))
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// GenerateResult resultado de una generación exitosa.
type GenerateResult struct {
	FileName  string
	PDF       []byte
	Persisted bool
}

// GenerateInvoiceUseCase ejecuta el pipeline de envío:
// recalcular → validar → snapshot → persistir → armar documento → encodear
// → exportar → historial.
//
// Se persiste antes de renderizar: si el colaborador de persistencia falla
// se corta antes de gastar trabajo de render y el error llega al usuario
// como fallo de persistencia, distinto de un fallo de generación.
type GenerateInvoiceUseCase struct {
	store    InvoiceStore // nil = variante solo-render
	history  HistoryStore // nil = sin historial local
	encoder  DocumentEncoder
	exporter Exporter // nil = solo entrega por HTTP
	clk      clock.Clock
	log      *logger.Logger

	// inFlight es por instancia: el despliegue modela una sesión de autoría
	// de un solo usuario, así que una instancia admite una generación a la
	// vez. Para servir usuarios concurrentes se crea un caso de uso por
	// sesión, no se comparte este.
	inFlight atomic.Bool
}

// NewGenerateInvoiceUseCase construye el caso de uso. store, history y
// exporter pueden ser nil según la variante de despliegue; encoder es
// obligatorio.
func NewGenerateInvoiceUseCase(
	store InvoiceStore,
	history HistoryStore,
	encoder DocumentEncoder,
	exporter Exporter,
	clk clock.Clock,
	log *logger.Logger,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		store:    store,
		history:  history,
		encoder:  encoder,
		exporter: exporter,
		clk:      clk,
		log:      log,
	}
}

// Generate valida la factura y produce el PDF final.
//
// Mientras una generación está en curso, un segundo envío concurrente se
// rechaza con domain.ErrGenerationInFlight en lugar de competir por dos
// encodings. El flag de ocupado se libera siempre a la salida, falle el
// paso que falle.
func (uc *GenerateInvoiceUseCase) Generate(ctx context.Context, inv *entity.Invoice) (*GenerateResult, error) {
	if !uc.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrGenerationInFlight
	}
	defer uc.inFlight.Store(false)

	// El servidor es la fuente de verdad de los derivados: se recalcula
	// siempre antes de validar, ignorando los totales que venga trayendo
	// el registro.
	dombilling.Recalculate(inv)

	if fieldErrs := dombilling.Validate(inv); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	// Snapshot inmutable: de aquí en adelante nadie edita lo que se
	// persiste y se renderiza.
	snap := inv.Snapshot()
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = uc.clk.Now()
	}
	fileName := fmt.Sprintf("Invoice-%s.pdf", snap.InvoiceNumber)

	persisted := false
	if uc.store != nil {
		if err := uc.store.Save(ctx, snap); err != nil {
			uc.log.Error().Err(err).Str("invoice", snap.InvoiceNumber).Msg("persistencia de factura")
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		persisted = true
	}

	doc := document.Build(snap)
	pdf, err := uc.encoder.Encode(ctx, doc)
	if err != nil {
		uc.log.Error().Err(err).Str("invoice", snap.InvoiceNumber).Bool("persisted", persisted).
			Msg("encoding del documento")
		if persisted {
			// Guardada pero sin render: el caller debe poder decírselo
			// al usuario, nunca ocultar el fallo parcial.
			return nil, fmt.Errorf("%w (factura ya persistida): %v", domain.ErrGeneration, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	if uc.exporter != nil {
		if err := uc.exporter.Export(ctx, fileName, pdf); err != nil {
			uc.log.Error().Err(err).Str("file", fileName).Msg("exportación del documento")
			return nil, fmt.Errorf("%w: exportar %s: %v", domain.ErrGeneration, fileName, err)
		}
	}

	if uc.history != nil {
		entry := HistoryEntry{Invoice: *snap, GeneratedAt: uc.clk.Now()}
		if err := uc.history.Append(ctx, entry); err != nil {
			// El historial es un colaborador secundario: se reporta pero
			// no anula una generación ya completada.
			uc.log.Warn().Err(err).Str("invoice", snap.InvoiceNumber).Msg("historial de facturas")
		}
	}

	uc.log.Info().Str("invoice", snap.InvoiceNumber).Int("bytes", len(pdf)).
		Bool("persisted", persisted).Msg("factura generada")

	return &GenerateResult{FileName: fileName, PDF: pdf, Persisted: persisted}, nil
}

// History expone el historial local (nil si no está configurado).
func (uc *GenerateInvoiceUseCase) History() HistoryStore { return uc.history }
