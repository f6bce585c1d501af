package clock

import "time"

// Clock abstrae la hora actual para que los valores por defecto derivados del
// tiempo (número de factura, fechas) sean deterministas en tests.
type Clock interface {
	Now() time.Time
}

// System usa la hora real del sistema.
type System struct{}

// Now devuelve time.Now().
func (System) Now() time.Time { return time.Now() }

// Fixed devuelve siempre el mismo instante (para tests).
type Fixed struct {
	T time.Time
}

// Now devuelve el instante fijado.
func (f Fixed) Now() time.Time { return f.T }
