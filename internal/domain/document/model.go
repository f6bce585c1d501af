// Package document define el modelo intermedio del documento imprimible:
// un árbol ordenado de bloques independiente del motor de render. El builder
// mapea una factura finalizada a este árbol; el encoder PDF lo consume sin
// volver a mirar la entidad.
package document

// Block es un nodo de primer nivel del documento. Los bloques se encodean
// en el orden en que aparecen en Document.Blocks.
type Block interface {
	isBlock()
}

// Document árbol completo del documento, listo para encodear.
type Document struct {
	Blocks []Block
}

// TitleBlock encabezado principal del documento.
type TitleBlock struct {
	Text string
}

// AddressBlock bloque de dirección de una parte (emisor o receptor).
// Lines contiene solo las líneas no vacías, ya formateadas; los campos
// opcionales ausentes no generan línea.
type AddressBlock struct {
	Label string // "From" / "Bill To"
	Name  string
	Lines []string
}

// MetaRow par etiqueta/valor del bloque de metadatos.
type MetaRow struct {
	Label string
	Value string
}

// MetaBlock metadatos de la factura: número y fechas formateadas.
type MetaBlock struct {
	Label string
	Rows  []MetaRow
}

// TableRow fila de la tabla de líneas, con las celdas ya formateadas.
type TableRow struct {
	Description string
	Quantity    string
	Rate        string
	Amount      string
}

// TableBlock tabla de líneas: una fila de cabecera y una fila por línea de
// la factura, en el orden original de inserción.
type TableBlock struct {
	Header TableRow
	Rows   []TableRow
}

// TotalRow fila del bloque de totales. Final marca el importe definitivo
// (el total), que el render distingue visualmente.
type TotalRow struct {
	Label string
	Value string
	Final bool
}

// TotalsBlock bloque de totales: subtotal siempre, impuesto solo si la tasa
// es mayor que cero, total siempre al final.
type TotalsBlock struct {
	Rows []TotalRow
}

// NotesBlock notas libres; solo se emite si el texto no está vacío.
type NotesBlock struct {
	Label string
	Text  string
}

func (TitleBlock) isBlock()   {}
func (AddressBlock) isBlock() {}
func (MetaBlock) isBlock()    {}
func (TableBlock) isBlock()   {}
func (TotalsBlock) isBlock()  {}
func (NotesBlock) isBlock()   {}
