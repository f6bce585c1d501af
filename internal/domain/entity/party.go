package entity

// PartyDetails datos de una parte de la factura (emisor o receptor).
// Todos los campos son texto libre; solo Name es obligatorio.
type PartyDetails struct {
	Name    string
	Address string
	City    string
	State   string
	ZipCode string
	Country string
	Email   string
	Phone   string
}
