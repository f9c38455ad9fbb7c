package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-docs/internal/application/billing"
	"github.com/jhoicas/invoice-docs/internal/application/dto"
	"github.com/jhoicas/invoice-docs/internal/domain/entity"
	"github.com/jhoicas/invoice-docs/internal/domain/invoicetemplate"
)

// DocumentHandler representación gráfica de facturas: HTML, PDF, exportación
// masiva y vista pública.
type DocumentHandler struct {
	loader *billing.DocumentLoader
	pdf    *billing.PDFUseCase
	bulk   *billing.BulkExportUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(loader *billing.DocumentLoader, pdf *billing.PDFUseCase, bulk *billing.BulkExportUseCase) *DocumentHandler {
	return &DocumentHandler{loader: loader, pdf: pdf, bulk: bulk}
}

// responseSink entrega el PDF como descarga en la respuesta HTTP.
type responseSink struct {
	c *fiber.Ctx
}

func (s responseSink) Deliver(filename string, content []byte) error {
	s.c.Set(fiber.HeaderContentType, "application/pdf")
	s.c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return s.c.Status(fiber.StatusOK).Send(content)
}

// HTML devuelve el documento HTML de la factura (vista previa).
// GET /api/invoices/:id/html
func (h *DocumentHandler) HTML(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	req, err := h.loader.Load(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	html, err := h.pdf.RenderInvoiceHTML(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// PDF descarga el PDF de la factura con la plantilla elegida.
// GET /api/invoices/:id/pdf
func (h *DocumentHandler) PDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	req, err := h.loader.Load(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	if !h.pdf.DownloadInvoicePDF(c.UserContext(), req, responseSink{c: c}) {
		return downloadFailed(c)
	}
	return nil
}

// Render genera el PDF de un documento enviado en el cuerpo (sin persistir).
// POST /api/documents/render
func (h *DocumentHandler) Render(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RenderDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Invoice.InvoiceNumber) == "" || strings.TrimSpace(in.Client.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invoice_number y client.name son obligatorios"})
	}

	ctx := c.UserContext()
	tier := h.loader.SubscriptionTier(ctx, userID)
	if in.TemplateID > 0 && !billing.CanUseTemplate(invoicetemplate.Get(in.TemplateID), tier) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la plantilla requiere plan premium"})
	}

	company := companyFromDTO(userID, in.Company)
	if company.Name == "" {
		stored, err := h.loader.CompanyFor(ctx, userID)
		if err != nil {
			return writeError(c, err, "empresa no encontrada")
		}
		if stored != nil {
			company = stored
		}
	}

	req := billing.DocumentRequest{
		Invoice:          invoiceFromDTO(userID, in.Invoice),
		Client:           clientFromDTO(userID, in.Client),
		Items:            itemsFromDTO(in.Items),
		Company:          company,
		SubscriptionTier: tier,
		TemplateID:       in.TemplateID,
	}
	if !h.pdf.DownloadInvoicePDF(ctx, req, responseSink{c: c}) {
		return downloadFailed(c)
	}
	return nil
}

// Export genera un ZIP con los PDF de varias facturas.
// POST /api/invoices/export
func (h *DocumentHandler) Export(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.BulkExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.bulk.Export(c.UserContext(), userID, in.InvoiceIDs)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	c.Set("X-Export-Id", res.ExportID)
	c.Set("X-Export-Failed", fmt.Sprint(len(res.Failures)))
	return c.Status(fiber.StatusOK).Send(res.Archive)
}

// Public vista pública de la factura (destino del código QR). Sin autenticación.
// GET /public/invoices/:id
func (h *DocumentHandler) Public(c *fiber.Ctx) error {
	req, err := h.loader.LoadPublic(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	html, err := h.pdf.RenderInvoiceHTML(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "factura no encontrada")
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Set("X-Robots-Tag", "noindex")
	c.Type("html", "utf-8")
	return c.SendString(html)
}

// ── Mapeo DTO → entidades ─────────────────────────────────────────────────────

func invoiceFromDTO(userID string, in dto.DocumentInvoice) *entity.Invoice {
	issue := in.IssueDate
	if issue.IsZero() {
		issue = time.Now().UTC()
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	return &entity.Invoice{
		ID:             in.ID,
		UserID:         userID,
		InvoiceNumber:  in.InvoiceNumber,
		IssueDate:      issue,
		DueDate:        in.DueDate,
		Currency:       in.Currency,
		Status:         status,
		TaxRate:        in.TaxRate,
		DiscountRate:   in.DiscountRate,
		ShippingCharge: in.ShippingCharge,
		PaidAmount:     in.PaidAmount,
		Notes:          in.Notes,
		Terms:          in.Terms,
	}
}

func clientFromDTO(userID string, p dto.DocumentParty) *entity.Client {
	return &entity.Client{
		UserID:      userID,
		Name:        p.Name,
		CompanyName: p.CompanyName,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		PostalCode:  p.PostalCode,
		Country:     p.Country,
	}
}

func companyFromDTO(userID string, p dto.DocumentParty) *entity.Company {
	return &entity.Company{
		UserID:     userID,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Website:    p.Website,
		Address:    p.Address,
		City:       p.City,
		State:      p.State,
		PostalCode: p.PostalCode,
		Country:    p.Country,
		TaxID:      p.TaxID,
		LogoURL:    p.LogoURL,
	}
}

func itemsFromDTO(items []dto.DocumentItem) []*entity.InvoiceItem {
	out := make([]*entity.InvoiceItem, 0, len(items))
	for i, it := range items {
		out = append(out, &entity.InvoiceItem{
			Position:    i + 1,
			ProductName: it.ProductName,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			Rate:        it.Rate,
		})
	}
	return out
}
