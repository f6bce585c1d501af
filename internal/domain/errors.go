package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La taxonomía separa validación, generación del documento y persistencia
// para que la capa HTTP pueda señalarlos de forma distinta y el usuario
// nunca quede sin saber qué paso falló.
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrLastItem           = errors.New("la factura debe conservar al menos una línea")
	ErrItemNotFound       = errors.New("línea de factura no encontrada")
	ErrGeneration         = errors.New("falló la generación del documento")
	ErrPersistence        = errors.New("falló la persistencia de la factura")
	ErrGenerationInFlight = errors.New("ya hay una generación en curso")
)
