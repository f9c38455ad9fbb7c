// invoicectl renderiza facturas de muestra sin base de datos: sirve para revisar las
// plantillas y el pipeline de exportación en local.
//
// Uso:
//
//	go run ./cmd/invoicectl templates
//	go run ./cmd/invoicectl render --template 6 --tier premium --item "Design:10:50" -o out.pdf
//	go run ./cmd/invoicectl render --format html > out.html
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/assets"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/chrome"
	infrapdf "github.com/jhoicas/invoice-docs/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-docs/internal/infrastructure/qr"
	"github.com/jhoicas/invoice-docs/pkg/logger"
)

var (
	renderTemplate int
	renderFormat   string
	renderOutput   string
	renderTier     string
	renderNumber   string
	renderClient   string
	renderCompany  string
	renderCurrency string
	renderTax      float64
	renderDiscount float64
	renderShipping float64
	renderPaid     float64
	renderItems    []string
	renderBaseURL  string
	renderChrome   string
	renderVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:           "invoicectl",
	Short:         "Herramientas locales de representación gráfica de facturas",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Lista el catálogo de plantillas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printTemplates(cmd.OutOrStdout())
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renderiza una factura de muestra en HTML o PDF",
	Example: `  invoicectl render --template 3 -o invoice.pdf
  invoicectl render --format html --item "Hosting:12:25" --item "Support:3:80" > invoice.html`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(templatesCmd, renderCmd)
	f := renderCmd.Flags()
	f.IntVar(&renderTemplate, "template", invoicetemplate.DefaultID, "Id de plantilla")
	f.StringVar(&renderFormat, "format", "pdf", "Formato de salida: pdf o html")
	f.StringVarP(&renderOutput, "output", "o", "", "Archivo de salida (por defecto: stdout)")
	f.StringVar(&renderTier, "tier", entity.TierFree, "Plan del emisor (free, trial, basic, premium, enterprise)")
	f.StringVar(&renderNumber, "number", "", "Número de factura (por defecto: INV-AAAAMMDD)")
	f.StringVar(&renderClient, "client", "Acme Corp", "Nombre del cliente")
	f.StringVar(&renderCompany, "company", "Studio LLC", "Nombre del emisor")
	f.StringVar(&renderCurrency, "currency", "USD", "Moneda ISO 4217")
	f.Float64Var(&renderTax, "tax", 0, "Impuesto en porcentaje (ej. 19)")
	f.Float64Var(&renderDiscount, "discount", 0, "Descuento en porcentaje")
	f.Float64Var(&renderShipping, "shipping", 0, "Cargo de envío")
	f.Float64Var(&renderPaid, "paid", 0, "Monto ya pagado")
	f.StringArrayVar(&renderItems, "item", nil, "Ítem nombre:cantidad:tarifa (repetible)")
	f.StringVar(&renderBaseURL, "base-url", "https://invoices.example.com", "Base de la URL pública del QR")
	f.StringVar(&renderChrome, "chrome", "", "Ruta del ejecutable de Chrome")
	f.BoolVarP(&renderVerbose, "verbose", "v", false, "Logs de depuración")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printTemplates(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tCATEGORÍA\tVARIANTE")
	for _, cfg := range invoicetemplate.All() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", cfg.ID, cfg.Name, cfg.Category, invoicetemplate.VariantOf(cfg))
	}
	return w.Flush()
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderFormat != "pdf" && renderFormat != "html" {
		return fmt.Errorf("formato no soportado: %q", renderFormat)
	}
	cfg := invoicetemplate.Get(renderTemplate)
	if !invoicetemplate.Exists(renderTemplate) {
		return fmt.Errorf("plantilla %d no existe (ver: invoicectl templates)", renderTemplate)
	}
	if !billing.CanUseTemplate(cfg, renderTier) {
		return fmt.Errorf("la plantilla %d requiere plan premium (--tier premium)", renderTemplate)
	}

	items, err := parseItems(renderItems)
	if err != nil {
		return err
	}
	req := sampleRequest(items)

	level := "warn"
	if renderVerbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Service: "invoicectl", Output: os.Stderr})

	rasterizer := chrome.NewRasterizer(chrome.Options{ExecPath: renderChrome, LoadTimeout: 30 * time.Second}, log.Component("chrome"))
	defer rasterizer.Close()

	// Sin selector: la plantilla sale siempre de --template.
	uc := billing.NewPDFUseCase(
		nil,
		rasterizer,
		infrapdf.NewMarotoComposer(),
		qr.NewGenerator(qr.DefaultSize),
		assets.NewFetcher(&http.Client{}, 10*time.Second),
		nil,
		billing.PDFOptions{PublicBaseURL: renderBaseURL, BrandName: "InvoiceDocs"},
		log.Component("pdf"),
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	var content []byte
	if renderFormat == "html" {
		html, err := uc.RenderInvoiceHTML(ctx, req)
		if err != nil {
			return err
		}
		content = []byte(html)
	} else {
		out, err := uc.ExportInvoicePDF(ctx, req)
		if err != nil {
			return err
		}
		content = out.Content
	}

	if renderOutput == "" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}
	if err := os.WriteFile(renderOutput, content, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", renderOutput, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "generado %s (%d bytes, plantilla %d %s)\n", renderOutput, len(content), cfg.ID, cfg.Name)
	return nil
}

func sampleRequest(items []*entity.InvoiceItem) billing.DocumentRequest {
	number := renderNumber
	if number == "" {
		number = "INV-" + time.Now().Format("20060102")
	}
	issue := time.Now().UTC()
	due := issue.AddDate(0, 0, 14)
	return billing.DocumentRequest{
		Invoice: &entity.Invoice{
			ID:             "sample",
			InvoiceNumber:  number,
			IssueDate:      issue,
			DueDate:        &due,
			Currency:       renderCurrency,
			Status:         entity.InvoiceStatusSent,
			TaxRate:        decimal.NewFromFloat(renderTax),
			DiscountRate:   decimal.NewFromFloat(renderDiscount),
			ShippingCharge: decimal.NewFromFloat(renderShipping),
			PaidAmount:     decimal.NewFromFloat(renderPaid),
			Terms:          "Pago a 14 días.",
		},
		Client:           &entity.Client{Name: renderClient, Email: "billing@example.com"},
		Items:            items,
		Company:          &entity.Company{Name: renderCompany, Email: "hello@example.com"},
		SubscriptionTier: renderTier,
		TemplateID:       renderTemplate,
	}
}

// parseItems interpreta "nombre:cantidad:tarifa"; sin ítems usa dos de ejemplo.
func parseItems(raw []string) ([]*entity.InvoiceItem, error) {
	if len(raw) == 0 {
		raw = []string{"Design:10:50", "Hosting:2:25"}
	}
	items := make([]*entity.InvoiceItem, 0, len(raw))
	for i, s := range raw {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("ítem %q: formato nombre:cantidad:tarifa", s)
		}
		qty, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("ítem %q: cantidad: %w", s, err)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("ítem %q: tarifa: %w", s, err)
		}
		items = append(items, &entity.InvoiceItem{
			Position:    i + 1,
			ProductName: strings.TrimSpace(parts[0]),
			Quantity:    qty,
			Rate:        rate,
		})
	}
	return items, nil
}
