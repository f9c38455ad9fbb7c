// Package archive empaqueta los documentos exportados en un ZIP en memoria.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
)

// ZipBuilder implementa billing.Archiver.
type ZipBuilder struct {
	// now fija la fecha de modificación de las entradas (tests deterministas).
	now func() time.Time
}

// NewZipBuilder construye el empaquetador.
func NewZipBuilder() *ZipBuilder {
	return &ZipBuilder{now: time.Now}
}

// Zip empaqueta los archivos en el orden recibido. Los nombres repetidos reciben un
// sufijo numérico ("invoice-7 (2).pdf") para que ninguna entrada se pise.
func (z *ZipBuilder) Zip(files []billing.ArchiveFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	modified := z.now()
	seen := make(map[string]int, len(files))

	for _, f := range files {
		name := uniqueName(entryName(f.Name), seen)
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("zip: crear entrada %s: %w", name, err)
		}
		if _, err := fw.Write(f.Content); err != nil {
			return nil, fmt.Errorf("zip: escribir %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

// entryName deja solo el nombre base: el ZIP no lleva directorios.
func entryName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "document"
	}
	return name
}

func uniqueName(name string, seen map[string]int) string {
	seen[name]++
	n := seen[name]
	if n == 1 {
		return name
	}
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + " (" + strconv.Itoa(n) + ")" + ext
}
