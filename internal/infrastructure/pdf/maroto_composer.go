// Package pdf arma el PDF final a partir de la captura del documento (Maroto v2).
//
// Layout de la página A4:
//
//	┌─────────────────────────────┐
//	│ margen                      │
//	│  ┌───────────────────────┐  │
//	│  │ franja 1 del bitmap   │  │  ancho imprimible completo,
//	│  │ (alto de la página)   │  │  relación de aspecto intacta
//	│  └───────────────────────┘  │
//	└─────────────────────────────┘
//
// Un documento más alto que una página se corta en franjas del alto imprimible,
// una por página.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	mimage "github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
)

// Margen de página en mm. El documento HTML ya trae su propio relleno.
const marginMM = 5

// Holgura para que cada franja quepa en su página sin empujar a la siguiente.
const stripSlackMM = 0.5

// ── Composer ──────────────────────────────────────────────────────────────────

// MarotoComposer implementa billing.PDFComposer usando Maroto v2.
type MarotoComposer struct{}

// NewMarotoComposer construye el compositor.
func NewMarotoComposer() *MarotoComposer { return &MarotoComposer{} }

// Compose escala cada imagen al ancho imprimible, la corta en franjas del alto de
// página y devuelve los bytes del PDF.
func (c *MarotoComposer) Compose(
	ctx context.Context,
	images []billing.RasterImage,
	size billing.PageSize,
	meta billing.DocumentMeta,
) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("pdf: no hay imágenes para componer")
	}

	m := maroto.New(pageConfig(size, meta))
	layout := newPageLayout(size)

	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := stripRows(img, layout)
		if err != nil {
			return nil, fmt.Errorf("pdf: imagen %d: %w", i+1, err)
		}
		m.AddRows(rows...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func pageConfig(size billing.PageSize, meta billing.DocumentMeta) *entity.Config {
	b := config.NewBuilder().
		WithLeftMargin(marginMM).WithRightMargin(marginMM).
		WithTopMargin(marginMM).WithBottomMargin(marginMM)

	if size.Name == billing.A4.Name {
		b = b.WithPageSize(pagesize.A4)
	} else {
		b = b.WithDimensions(size.WidthMM, size.HeightMM)
	}
	if meta.Title != "" {
		b = b.WithTitle(meta.Title, true)
	}
	if meta.Author != "" {
		b = b.WithAuthor(meta.Author, true)
	}
	if meta.Subject != "" {
		b = b.WithSubject(meta.Subject, true)
	}
	return b.Build()
}

// ── Paginación ────────────────────────────────────────────────────────────────

// pageLayout área imprimible en mm.
type pageLayout struct {
	WidthMM  float64
	HeightMM float64
}

func newPageLayout(size billing.PageSize) pageLayout {
	return pageLayout{
		WidthMM:  size.WidthMM - 2*marginMM,
		HeightMM: size.HeightMM - 2*marginMM - stripSlackMM,
	}
}

// strip franja del bitmap: filas de píxeles [Y0, Y1) y su alto en mm.
type strip struct {
	Y0, Y1   int
	HeightMM float64
}

// planStrips divide una imagen de width×height px en franjas que llenan el ancho
// imprimible; todas miden una página salvo la última.
func planStrips(width, height int, layout pageLayout) []strip {
	if width <= 0 || height <= 0 {
		return nil
	}
	mmPerPx := layout.WidthMM / float64(width)
	pagePx := int(math.Floor(layout.HeightMM / mmPerPx))
	if pagePx < 1 {
		pagePx = 1
	}

	strips := make([]strip, 0, height/pagePx+1)
	for y := 0; y < height; y += pagePx {
		y1 := min(y+pagePx, height)
		strips = append(strips, strip{Y0: y, Y1: y1, HeightMM: float64(y1-y) * mmPerPx})
	}
	return strips
}

func stripRows(img billing.RasterImage, layout pageLayout) ([]core.Row, error) {
	src, err := png.Decode(bytes.NewReader(img.PNG))
	if err != nil {
		return nil, fmt.Errorf("decodificar png: %w", err)
	}
	bounds := src.Bounds()
	strips := planStrips(bounds.Dx(), bounds.Dy(), layout)
	if len(strips) == 0 {
		return nil, fmt.Errorf("imagen vacía")
	}

	// Una sola franja: la captura se usa tal cual.
	if len(strips) == 1 {
		return []core.Row{imageRow(img.PNG, strips[0].HeightMM)}, nil
	}

	sub, ok := src.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("formato de imagen no recortable %T", src)
	}

	rows := make([]core.Row, 0, len(strips))
	for _, s := range strips {
		part := sub.SubImage(image.Rect(bounds.Min.X, bounds.Min.Y+s.Y0, bounds.Max.X, bounds.Min.Y+s.Y1))
		var buf bytes.Buffer
		if err := png.Encode(&buf, part); err != nil {
			return nil, fmt.Errorf("codificar franja: %w", err)
		}
		rows = append(rows, imageRow(buf.Bytes(), s.HeightMM))
	}
	return rows, nil
}

func imageRow(pngBytes []byte, heightMM float64) core.Row {
	return row.New(heightMM).Add(
		col.New(12).Add(
			mimage.NewFromBytes(pngBytes, extension.Png, props.Rect{Percent: 100}),
		),
	)
}
