package billing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/invoice-docs/internal/application/document"
	"github.com/jhoicas/invoice-docs/internal/domain"
	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
	"github.com/jhoicas/invoice-docs/internal/domain/totals"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PDFOptions parámetros del pipeline que vienen de la configuración.
type PDFOptions struct {
	PublicBaseURL string // base de la URL pública codificada en el QR
	BrandName     string // nombre del producto en la marca de agua
	BrandLogoURL  string // logo del producto en la marca de agua
	Page          PageSize
}

// ExportedPDF resultado de una exportación.
type ExportedPDF struct {
	Filename   string
	Content    []byte
	TemplateID int
}

// PDFUseCase genera la representación gráfica (HTML y PDF) de una factura con la
// plantilla elegida por el usuario.
type PDFUseCase struct {
	selector   *TemplateSelector
	rasterizer Rasterizer
	composer   PDFComposer
	qr         QRGenerator
	assets     AssetEmbedder
	recorder   ExportRecorder
	opts       PDFOptions
	log        zerolog.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
// qr, assets y recorder pueden ser nil: el documento se genera sin QR, con las
// imágenes por URL y sin métricas.
func NewPDFUseCase(
	selector *TemplateSelector,
	rasterizer Rasterizer,
	composer PDFComposer,
	qr QRGenerator,
	assets AssetEmbedder,
	recorder ExportRecorder,
	opts PDFOptions,
	log zerolog.Logger,
) *PDFUseCase {
	if opts.Page.ViewportWidth == 0 {
		opts.Page = A4
	}
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	return &PDFUseCase{
		selector:   selector,
		rasterizer: rasterizer,
		composer:   composer,
		qr:         qr,
		assets:     assets,
		recorder:   recorder,
		opts:       opts,
		log:        log,
	}
}

// RenderInvoiceHTML devuelve solo el documento HTML (vista previa y vista pública).
func (uc *PDFUseCase) RenderInvoiceHTML(ctx context.Context, req DocumentRequest) (string, error) {
	html, _, err := uc.renderHTML(ctx, req)
	return html, err
}

// ExportInvoicePDF ejecuta el pipeline completo y devuelve el PDF en memoria.
//
// Retorna:
//   - domain.ErrInvalidInput  si la solicitud no trae factura.
//   - domain.ErrRenderFailed  si falla el render o la captura del documento.
//   - domain.ErrComposeFailed si falla el armado del PDF.
func (uc *PDFUseCase) ExportInvoicePDF(ctx context.Context, req DocumentRequest) (*ExportedPDF, error) {
	start := time.Now()
	out, err := uc.export(ctx, req)
	if uc.recorder != nil {
		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailure
		}
		uc.recorder.ObserveExport(outcome, time.Since(start))
	}
	return out, err
}

// DownloadInvoicePDF genera el PDF y lo entrega al sink con un nombre derivado del
// número de factura. Devuelve false ante cualquier fallo del render, la captura o el
// armado; el sink nunca recibe un PDF incompleto.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, req DocumentRequest, sink FileSink) (ok bool) {
	logger := uc.log.With().Str("invoice_id", invoiceID(req)).Logger()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("pdf: pánico durante la exportación")
			ok = false
		}
	}()

	out, err := uc.ExportInvoicePDF(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("pdf: exportación fallida")
		return false
	}
	if sink == nil {
		logger.Error().Msg("pdf: no hay destino para la descarga")
		return false
	}
	if err := sink.Deliver(out.Filename, out.Content); err != nil {
		logger.Error().Err(err).Str("filename", out.Filename).Msg("pdf: entrega del archivo fallida")
		return false
	}
	logger.Info().
		Str("filename", out.Filename).
		Int("template_id", out.TemplateID).
		Int("bytes", len(out.Content)).
		Msg("pdf: factura descargada")
	return true
}

func (uc *PDFUseCase) export(ctx context.Context, req DocumentRequest) (*ExportedPDF, error) {
	// ── 1-3. Plantilla, datos derivados y HTML ────────────────────────────────
	html, cfg, err := uc.renderHTML(ctx, req)
	if err != nil {
		return nil, err
	}

	// ── 4-5. Render fuera de pantalla y captura ───────────────────────────────
	if uc.rasterizer == nil {
		return nil, fmt.Errorf("%w: no hay rasterizador configurado", domain.ErrRenderFailed)
	}
	img, err := uc.rasterizer.RenderToRaster(ctx, html, uc.opts.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	if img == nil || len(img.PNG) == 0 {
		return nil, fmt.Errorf("%w: captura vacía", domain.ErrRenderFailed)
	}

	// ── 6. Armado del PDF ─────────────────────────────────────────────────────
	if uc.composer == nil {
		return nil, fmt.Errorf("%w: no hay compositor configurado", domain.ErrComposeFailed)
	}
	meta := DocumentMeta{
		Title:   "Invoice " + req.Invoice.InvoiceNumber,
		Author:  req.Company.Name,
		Subject: cfg.Name,
	}
	pdf, err := uc.composer.Compose(ctx, []RasterImage{*img}, uc.opts.Page, meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrComposeFailed, err)
	}

	return &ExportedPDF{
		Filename:   InvoiceFilename(req.Invoice),
		Content:    pdf,
		TemplateID: cfg.ID,
	}, nil
}

func (uc *PDFUseCase) renderHTML(ctx context.Context, req DocumentRequest) (string, invoicetemplate.Config, error) {
	if req.Invoice == nil {
		return "", invoicetemplate.Config{}, fmt.Errorf("%w: factura requerida", domain.ErrInvalidInput)
	}
	if req.Client == nil {
		req.Client = &entity.Client{}
	}
	if req.Company == nil {
		req.Company = &entity.Company{}
	}

	cfg := uc.resolveTemplate(ctx, req)
	in := uc.BuildInput(ctx, req)

	html, err := document.GenerateInvoiceHTML(in, cfg)
	if err != nil {
		return "", cfg, fmt.Errorf("%w: generar html: %v", domain.ErrRenderFailed, err)
	}
	return html, cfg, nil
}

// resolveTemplate nunca falla: ante cualquier problema usa la plantilla por defecto.
func (uc *PDFUseCase) resolveTemplate(ctx context.Context, req DocumentRequest) invoicetemplate.Config {
	switch {
	case req.TemplateID > 0 && invoicetemplate.Exists(req.TemplateID):
		return invoicetemplate.Get(req.TemplateID)
	case uc.selector == nil:
		return invoicetemplate.Default()
	case req.OwnerID != "":
		return uc.selector.ForUser(ctx, req.OwnerID)
	default:
		return uc.selector.Selected(ctx)
	}
}

// BuildInput arma el Input del generador: totales recalculados desde los ítems, QR
// con la URL pública e imágenes incrustadas como data URI. Ningún fallo aborta.
func (uc *PDFUseCase) BuildInput(ctx context.Context, req DocumentRequest) document.Input {
	inv := req.Invoice
	client, company := req.Client, req.Company
	if client == nil {
		client = &entity.Client{}
	}
	if company == nil {
		company = &entity.Company{}
	}

	lines := make([]totals.Line, 0, len(req.Items))
	items := make([]document.Item, 0, len(req.Items))
	for _, it := range req.Items {
		if it == nil {
			continue
		}
		lines = append(lines, totals.Line{Quantity: it.Quantity, Rate: it.Rate})
		items = append(items, document.Item{
			ProductName: it.ProductName,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			Rate:        it.Rate,
		})
	}
	t := totals.Calculate(lines, totals.Rates{
		TaxPercent:      inv.TaxRate,
		DiscountPercent: inv.DiscountRate,
		ShippingCharge:  inv.ShippingCharge,
		PaidAmount:      inv.PaidAmount,
	})
	for i := range items {
		items[i].Amount = t.LineAmounts[i]
	}

	in := document.Input{
		Invoice: document.InvoiceInfo{
			ID:        inv.ID,
			Number:    inv.InvoiceNumber,
			IssueDate: inv.IssueDate,
			DueDate:   inv.DueDate,
			Currency:  inv.Currency,
			Status:    inv.Status,
			Notes:     inv.Notes,
			Terms:     inv.Terms,
		},
		Client:           clientParty(client),
		Company:          companyParty(company),
		Items:            items,
		Totals:           t,
		SubscriptionTier: req.SubscriptionTier,
		BrandName:        uc.opts.BrandName,
	}

	in.QRCode = uc.qrCode(inv.ID)

	// Logo y marca de agua se descargan en paralelo; un fallo solo omite la imagen.
	var (
		g         errgroup.Group
		logo      string
		watermark string
	)
	g.Go(func() error {
		logo = uc.embed(ctx, company.LogoURL, "logo")
		return nil
	})
	if in.ShowWatermark() {
		g.Go(func() error {
			watermark = uc.embed(ctx, uc.opts.BrandLogoURL, "watermark")
			return nil
		})
	}
	_ = g.Wait()
	in.CompanyLogo, in.WatermarkLogo = logo, watermark

	return in
}

func (uc *PDFUseCase) qrCode(invoiceID string) string {
	if uc.qr == nil || uc.opts.PublicBaseURL == "" || invoiceID == "" {
		return ""
	}
	uri, err := uc.qr.DataURI(uc.opts.PublicBaseURL + "/public/invoices/" + invoiceID)
	if err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", invoiceID).Msg("pdf: no se pudo generar el código QR, se omite")
		uc.degraded("qr")
		return ""
	}
	return uri
}

func (uc *PDFUseCase) embed(ctx context.Context, src, kind string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") || uc.assets == nil {
		return src
	}
	uri, err := uc.assets.Embed(ctx, src)
	if err != nil {
		uc.log.Warn().Err(err).Str("asset", kind).Str("url", src).Msg("pdf: no se pudo incrustar la imagen, se omite")
		uc.degraded(kind)
		return ""
	}
	return uri
}

func (uc *PDFUseCase) degraded(reason string) {
	if uc.recorder != nil {
		uc.recorder.ObserveDegraded(reason)
	}
}

// InvoiceFilename nombre determinista del archivo: invoice-{número}.pdf, con el
// número reducido a [A-Za-z0-9._-].
func InvoiceFilename(inv *entity.Invoice) string {
	number := ""
	if inv != nil {
		number = sanitizeFilename(inv.InvoiceNumber)
		if number == "" {
			number = sanitizeFilename(inv.ID)
		}
	}
	if number == "" {
		number = "document"
	}
	return "invoice-" + number + ".pdf"
}

func sanitizeFilename(s string) string {
	s = unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-.")
}

func invoiceID(req DocumentRequest) string {
	if req.Invoice == nil {
		return ""
	}
	return req.Invoice.ID
}

func clientParty(c *entity.Client) document.Party {
	return document.Party{
		Name:        c.Name,
		CompanyName: c.CompanyName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		PostalCode:  c.PostalCode,
		Country:     c.Country,
	}
}

func companyParty(c *entity.Company) document.Party {
	return document.Party{
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		Website:    c.Website,
		TaxID:      c.TaxID,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		PostalCode: c.PostalCode,
		Country:    c.Country,
	}
}
