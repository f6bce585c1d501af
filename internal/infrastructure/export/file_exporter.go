// Package export implementa el colaborador de exportación: escribe el
// stream codificado en un sink de archivos con el nombre sugerido.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	appbilling "github.com/jhoicas/invoice-studio/internal/application/billing"
)

var _ appbilling.Exporter = (*FileExporter)(nil)

// FileExporter escribe los PDF generados en un directorio local.
type FileExporter struct {
	dir string
}

// NewFileExporter construye el exportador; el directorio se crea al primer uso.
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{dir: dir}
}

// Export guarda data como <dir>/<filename>. El nombre viene saneado del
// caso de uso (Invoice-<número>.pdf); se descarta cualquier componente de
// ruta por si el número de factura trae separadores.
func (e *FileExporter) Export(_ context.Context, filename string, data []byte) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de exportación: %w", err)
	}

	path := filepath.Join(e.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return nil
}
