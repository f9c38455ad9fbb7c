package document

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
)

// builder constructor de HTML de una variante.
type builder func(w io.Writer, v view) error

// builders un constructor por variante; generator_internal_test comprueba que
// todas las de invoicetemplate.Variants estén cubiertas.
var builders = map[invoicetemplate.Variant]builder{
	invoicetemplate.VariantStandard:  renderStandard,
	invoicetemplate.VariantExecutive: renderExecutive,
	invoicetemplate.VariantSidebar:   renderSidebar,
	invoicetemplate.VariantSplit:     renderSplit,
	invoicetemplate.VariantModern:    renderModern,
}

// templates conjunto parseado una sola vez; solo se ejecuta (seguro entre goroutines).
var templates = template.Must(template.New("invoice").Parse(
	partialsTemplate + standardTemplate + executiveTemplate + sidebarTemplate + splitTemplate + modernTemplate,
))

// GenerateInvoiceHTML genera el documento HTML completo de la factura.
// Las plantillas premium con layout executive, sidebar, split o modern usan su
// constructor propio; el resto usa el estándar.
func GenerateInvoiceHTML(in Input, cfg invoicetemplate.Config) (string, error) {
	variant := invoicetemplate.VariantOf(cfg)
	build, ok := builders[variant]
	if !ok {
		build = renderStandard
	}

	var buf bytes.Buffer
	if err := build(&buf, newView(in, cfg, variant)); err != nil {
		return "", fmt.Errorf("document: renderizar variante %s: %w", variant, err)
	}
	return buf.String(), nil
}
