package billing

import (
	"context"
	"time"
)

// SessionProvider resuelve el usuario autenticado de la petición en curso.
type SessionProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// PageSize formato físico de página y viewport equivalente en píxeles CSS (96 dpi).
type PageSize struct {
	Name           string
	WidthMM        float64
	HeightMM       float64
	ViewportWidth  int
	ViewportHeight int
}

// A4 formato de exportación de las facturas.
var A4 = PageSize{Name: "A4", WidthMM: 210, HeightMM: 297, ViewportWidth: 794, ViewportHeight: 1123}

// RasterImage captura PNG de un documento renderizado. Width y Height en píxeles
// del bitmap (ya multiplicados por Scale).
type RasterImage struct {
	PNG    []byte
	Width  int
	Height int
	Scale  float64
}

// Rasterizer renderiza HTML fuera de pantalla y lo captura como imagen.
// La implementación debe liberar la superficie de render en todos los caminos.
type Rasterizer interface {
	RenderToRaster(ctx context.Context, html string, page PageSize) (*RasterImage, error)
}

// DocumentMeta metadatos del PDF.
type DocumentMeta struct {
	Title   string
	Author  string
	Subject string
}

// PDFComposer arma un PDF a partir de imágenes rasterizadas.
type PDFComposer interface {
	Compose(ctx context.Context, images []RasterImage, page PageSize, meta DocumentMeta) ([]byte, error)
}

// QRGenerator codifica un contenido como imagen QR en data URI.
type QRGenerator interface {
	DataURI(content string) (string, error)
}

// AssetEmbedder descarga una imagen remota y la devuelve como data URI base64.
type AssetEmbedder interface {
	Embed(ctx context.Context, url string) (string, error)
}

// FileSink entrega el archivo final al llamador (descarga). Solo se invoca con un
// PDF completo.
type FileSink interface {
	Deliver(filename string, content []byte) error
}

// ArchiveFile entrada de un archivo comprimido.
type ArchiveFile struct {
	Name    string
	Content []byte
}

// Archiver empaqueta varios archivos (exportación masiva).
type Archiver interface {
	Zip(files []ArchiveFile) ([]byte, error)
}

// Resultados de exportación reportados al ExportRecorder.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ExportRecorder recibe métricas del pipeline. Puede ser nil.
type ExportRecorder interface {
	ObserveExport(outcome string, elapsed time.Duration)
	ObserveDegraded(reason string)
}
